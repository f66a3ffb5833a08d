package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/events"
	"github.com/campus-kit/registrar-service/internal/repository"
)

// LibraryService coordinates the append-only sign-in log.
type LibraryService struct {
	logs       repository.LibraryLogRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewLibraryService constructs the service.
func NewLibraryService(logs repository.LibraryLogRepository, dispatcher events.Dispatcher) *LibraryService {
	return &LibraryService{logs: logs, dispatcher: dispatcher, now: time.Now}
}

// LibraryLogInput describes a validated sign-in payload. Date and TimeIn are
// optional for the simplified QR sign-in and default to the current
// wall-clock values.
type LibraryLogInput struct {
	Date      string
	TimeIn    string
	Name      string
	YearLevel string
	Course    string
	Purpose   string
	Extra     string
	Via       string
}

// LibraryLogPage is one page of sign-in records plus the unpaged total.
type LibraryLogPage struct {
	Rows     []domain.LibraryLog
	Total    int
	Page     int
	PageSize int
}

// Create appends a sign-in record.
func (s *LibraryService) Create(ctx context.Context, input LibraryLogInput) (*domain.LibraryLog, error) {
	now := s.now()

	date := input.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	timeIn := input.TimeIn
	if timeIn == "" {
		timeIn = now.Format("15:04:05")
	}

	log := &domain.LibraryLog{
		ID:        domain.NewID(),
		Date:      date,
		TimeIn:    timeIn,
		Name:      input.Name,
		YearLevel: input.YearLevel,
		Course:    input.Course,
		Purpose:   input.Purpose,
		Extra:     input.Extra,
		Via:       domain.NormalizeVia(input.Via),
		CreatedAt: now.UTC(),
	}
	if err := s.logs.Insert(ctx, log); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLibrarySignIn,
			RecordID:  log.ID,
			Timestamp: now.UTC(),
			Payload: events.LibrarySignInPayload{
				Name:    log.Name,
				Purpose: log.Purpose,
				Via:     log.Via,
			},
		})
	}
	return log, nil
}

// List returns a page of sign-in records plus the filtered total. A
// non-positive page size means export-all: every matching row, no paging.
func (s *LibraryService) List(ctx context.Context, filter repository.LibraryLogFilter, page, pageSize int, exportAll bool) (*LibraryLogPage, error) {
	if page < 1 {
		page = 1
	}
	if exportAll || pageSize <= 0 {
		filter.Limit = 0
		filter.Offset = 0
	} else {
		filter.Limit = pageSize
		filter.Offset = (page - 1) * pageSize
	}

	total, err := s.logs.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	effectivePageSize := pageSize
	if exportAll || pageSize <= 0 {
		effectivePageSize = total
	}
	return &LibraryLogPage{Rows: rows, Total: total, Page: page, PageSize: effectivePageSize}, nil
}
