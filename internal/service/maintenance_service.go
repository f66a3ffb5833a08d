package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/events"
	"github.com/campus-kit/registrar-service/internal/repository"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// MaintenanceService coordinates general maintenance tickets.
type MaintenanceService struct {
	tickets    repository.MaintenanceRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(tickets repository.MaintenanceRepository, dispatcher events.Dispatcher) *MaintenanceService {
	return &MaintenanceService{tickets: tickets, dispatcher: dispatcher, now: time.Now}
}

// MaintenanceCreateInput describes a validated maintenance request payload.
type MaintenanceCreateInput struct {
	TicketID    string
	Requester   string
	Department  string
	Description string
	Urgency     string
}

// Create persists a maintenance ticket in the Open state.
func (s *MaintenanceService) Create(ctx context.Context, input MaintenanceCreateInput) (*domain.MaintenanceTicket, error) {
	ticket := &domain.MaintenanceTicket{
		ID:          domain.NewID(),
		TicketID:    input.TicketID,
		Requester:   input.Requester,
		Department:  input.Department,
		Description: input.Description,
		Urgency:     input.Urgency,
		Status:      domain.MaintenanceStatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns maintenance tickets matching the filter, newest first.
func (s *MaintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceTicket, error) {
	return s.tickets.List(ctx, filter)
}

// SetStatus moves a ticket between Open and Completed. The completion
// timestamp is stamped on Open→Completed, cleared on Completed→Open, and
// untouched when the status does not actually change.
func (s *MaintenanceService) SetStatus(ctx context.Context, id, status string) error {
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}
	if current.Status == status {
		return nil
	}

	completedAt := completionTimestamp(status, s.now)
	if err := s.tickets.UpdateStatus(ctx, id, status, completedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}

	s.publishStatusChange(ctx, "maintenance", id, current.Status, status)
	return nil
}

// Delete removes a maintenance ticket by id.
func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}
	return nil
}

func (s *MaintenanceService) publishStatusChange(ctx context.Context, flavor, id, oldStatus, newStatus string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMaintenanceStatusChanged,
		RecordID:  id,
		Timestamp: s.now().UTC(),
		Payload: events.MaintenanceStatusChangedPayload{
			Flavor:    flavor,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}

// ClassroomService coordinates classroom-flavored maintenance tickets.
type ClassroomService struct {
	tickets    repository.ClassroomRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewClassroomService constructs the service.
func NewClassroomService(tickets repository.ClassroomRepository, dispatcher events.Dispatcher) *ClassroomService {
	return &ClassroomService{tickets: tickets, dispatcher: dispatcher, now: time.Now}
}

// ClassroomCreateInput describes a validated classroom ticket payload.
type ClassroomCreateInput struct {
	Reference   string
	Department  string
	Requester   string
	Particulars string
	Location    string
	Description string
	DateFiled   *time.Time
}

// Create persists a classroom ticket in the Open state, defaulting the
// filing date to now.
func (s *ClassroomService) Create(ctx context.Context, input ClassroomCreateInput) (*domain.ClassroomTicket, error) {
	now := s.now().UTC()
	filed := now
	if input.DateFiled != nil {
		filed = *input.DateFiled
	}
	ticket := &domain.ClassroomTicket{
		ID:          domain.NewID(),
		Reference:   input.Reference,
		Department:  input.Department,
		Requester:   input.Requester,
		Particulars: input.Particulars,
		Location:    input.Location,
		Description: input.Description,
		Status:      domain.MaintenanceStatusOpen,
		DateFiled:   filed,
		CreatedAt:   now,
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns classroom tickets matching the filter, newest filed first.
func (s *ClassroomService) List(ctx context.Context, filter repository.ClassroomFilter) ([]domain.ClassroomTicket, error) {
	return s.tickets.List(ctx, filter)
}

// SetStatus mirrors MaintenanceService.SetStatus for classroom tickets.
func (s *ClassroomService) SetStatus(ctx context.Context, id, status string) error {
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}
	if current.Status == status {
		return nil
	}

	completedAt := completionTimestamp(status, s.now)
	if err := s.tickets.UpdateStatus(ctx, id, status, completedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMaintenanceStatusChanged,
			RecordID:  id,
			Timestamp: s.now().UTC(),
			Payload: events.MaintenanceStatusChangedPayload{
				Flavor:    "classroom",
				OldStatus: current.Status,
				NewStatus: status,
			},
		})
	}
	return nil
}

// Delete removes a classroom ticket by id.
func (s *ClassroomService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Ticket not found")
		}
		return err
	}
	return nil
}

// completionTimestamp returns now for a Completed transition, nil otherwise.
func completionTimestamp(status string, now func() time.Time) *time.Time {
	if status != domain.MaintenanceStatusCompleted {
		return nil
	}
	t := now().UTC()
	return &t
}
