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

// TicketService coordinates registrar ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher, now: time.Now}
}

// TicketCreateInput describes a validated registrar ticket creation payload.
type TicketCreateInput struct {
	Ref                      string
	StudentID                string
	StudentName              string
	Requester                string // bulk rows may carry requester instead of studentName
	RequestType              string
	DateReceived             *time.Time
	ScheduleRelease          *time.Time
	DateRelease              *time.Time
	TargetDays               *float64
	Remarks                  string
	Staff                    string
	Status                   string
	ORNumber                 string
	DateReceivedFromIncharge *time.Time
	ReceivedBy               string
}

// TicketPatch is the allow-listed change set for updates. Set flags
// distinguish "field absent" from "field explicitly cleared".
type TicketPatch struct {
	Status      *string
	StudentID   *string
	StudentName *string
	RequestType *string
	Staff       *string
	Remarks     *string
	ORNumber    *string
	ReceivedBy  *string

	TargetDays    *float64
	TargetDaysSet bool

	DateRelease    *time.Time
	DateReleaseSet bool

	ScheduleRelease    *time.Time
	ScheduleReleaseSet bool

	DateReceivedFromIncharge    *time.Time
	DateReceivedFromInchargeSet bool
}

// Create persists a single registrar ticket, defaulting the receipt date,
// generating the reference when absent and computing derived fields.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := s.buildTicket(input)
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		Ref:         ticket.Ref,
		StudentName: ticket.StudentName,
		RequestType: ticket.RequestType,
	})
	return ticket, nil
}

// CreateBatch persists a batch of tickets best-effort and unordered,
// returning how many were inserted.
func (s *TicketService) CreateBatch(ctx context.Context, inputs []TicketCreateInput) (int, error) {
	tickets := make([]*domain.Ticket, 0, len(inputs))
	for _, input := range inputs {
		tickets = append(tickets, s.buildTicket(input))
	}
	inserted, err := s.tickets.InsertMany(ctx, tickets)
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// List returns tickets matching the filter, newest received first.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, filter)
}

// Update applies an allow-listed change set to the stored ticket, stamping
// the release date on a transition to Released when none was supplied, and
// recomputing derived fields from the merged record.
func (s *TicketService) Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error) {
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Not found")
		}
		return nil, err
	}

	wasReleased := current.Status == domain.TicketStatusReleased

	if patch.Status != nil {
		current.Status = *patch.Status
	}
	if patch.StudentID != nil {
		current.StudentID = *patch.StudentID
	}
	if patch.StudentName != nil {
		current.StudentName = *patch.StudentName
	}
	if patch.RequestType != nil {
		current.RequestType = *patch.RequestType
	}
	if patch.Staff != nil {
		current.Staff = *patch.Staff
	}
	if patch.Remarks != nil {
		current.Remarks = *patch.Remarks
	}
	if patch.ORNumber != nil {
		current.ORNumber = *patch.ORNumber
	}
	if patch.ReceivedBy != nil {
		current.ReceivedBy = *patch.ReceivedBy
	}
	if patch.TargetDaysSet {
		current.TargetDays = patch.TargetDays
	}
	if patch.DateReleaseSet {
		current.DateRelease = patch.DateRelease
	}
	if patch.ScheduleReleaseSet {
		current.ScheduleRelease = patch.ScheduleRelease
	}
	if patch.DateReceivedFromInchargeSet {
		current.DateReceivedFromIncharge = patch.DateReceivedFromIncharge
	}

	if patch.Status != nil && *patch.Status == domain.TicketStatusReleased && !patch.DateReleaseSet {
		released := s.now().UTC()
		current.DateRelease = &released
	}

	current.Recompute()

	if err := s.tickets.Update(ctx, current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Not found")
		}
		return nil, err
	}

	if !wasReleased && current.Status == domain.TicketStatusReleased {
		s.publish(ctx, events.EventTicketReleased, current.ID, events.TicketReleasedPayload{
			Ref:            current.Ref,
			ProcessingDays: current.ProcessingDays,
			Timeliness:     current.Timeliness,
		})
	}
	return current, nil
}

// Delete removes a ticket by id.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Not found")
		}
		return err
	}
	return nil
}

func (s *TicketService) buildTicket(input TicketCreateInput) *domain.Ticket {
	now := s.now().UTC()

	received := input.DateReceived
	if received == nil {
		r := now
		received = &r
	}

	ref := input.Ref
	if ref == "" {
		name := input.StudentName
		if name == "" {
			name = input.Requester
		}
		ref = domain.BuildReference(*received, name)
	}

	status := input.Status
	if status == "" {
		status = domain.TicketStatusReceived
	}

	ticket := &domain.Ticket{
		ID:                       domain.NewID(),
		Ref:                      ref,
		StudentID:                input.StudentID,
		StudentName:              input.StudentName,
		RequestType:              input.RequestType,
		DateReceived:             received,
		ScheduleRelease:          input.ScheduleRelease,
		DateRelease:              input.DateRelease,
		TargetDays:               input.TargetDays,
		Remarks:                  input.Remarks,
		Staff:                    input.Staff,
		Status:                   status,
		ORNumber:                 input.ORNumber,
		DateReceivedFromIncharge: input.DateReceivedFromIncharge,
		ReceivedBy:               input.ReceivedBy,
		CreatedAt:                now,
	}
	ticket.Recompute()
	return ticket
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, recordID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RecordID:  recordID,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	})
}
