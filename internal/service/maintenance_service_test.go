package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/events"
	"github.com/campus-kit/registrar-service/internal/repository"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// fakeMaintenanceRepo is an in-memory MaintenanceRepository that counts
// status writes.
type fakeMaintenanceRepo struct {
	byID         map[string]*domain.MaintenanceTicket
	statusWrites int
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{byID: make(map[string]*domain.MaintenanceTicket)}
}

func (r *fakeMaintenanceRepo) Insert(_ context.Context, t *domain.MaintenanceTicket) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *fakeMaintenanceRepo) GetByID(_ context.Context, id string) (*domain.MaintenanceTicket, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *t
	return &clone, nil
}

func (r *fakeMaintenanceRepo) List(_ context.Context, _ repository.MaintenanceFilter) ([]domain.MaintenanceTicket, error) {
	out := make([]domain.MaintenanceTicket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) UpdateStatus(_ context.Context, id, status string, completedAt *time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	r.statusWrites++
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

func (r *fakeMaintenanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func TestMaintenanceServiceCreateOpensTicket(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	svc := NewMaintenanceService(repo, nil)

	ticket, err := svc.Create(context.Background(), MaintenanceCreateInput{
		TicketID:    "MT-001",
		Requester:   "J. Santos",
		Department:  "Registrar",
		Description: "Broken aircon",
		Urgency:     "High",
	})
	require.NoError(t, err)
	assert.True(t, domain.ValidID(ticket.ID))
	assert.Equal(t, domain.MaintenanceStatusOpen, ticket.Status)
	assert.Nil(t, ticket.CompletedAt)
}

func TestMaintenanceServiceSetStatusStampsCompletion(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewMaintenanceService(repo, dispatcher)
	done := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return done }

	ticket, err := svc.Create(context.Background(), MaintenanceCreateInput{
		Requester: "A", Department: "B", Description: "C", Urgency: "Low",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), ticket.ID, domain.MaintenanceStatusCompleted))

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, done, *stored.CompletedAt)

	changes := dispatcher.ofType(events.EventMaintenanceStatusChanged)
	require.Len(t, changes, 1)
	payload, ok := changes[0].Payload.(events.MaintenanceStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "maintenance", payload.Flavor)
	assert.Equal(t, domain.MaintenanceStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.MaintenanceStatusCompleted, payload.NewStatus)
}

func TestMaintenanceServiceSetStatusSameStatusNoOp(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewMaintenanceService(repo, dispatcher)

	ticket, err := svc.Create(context.Background(), MaintenanceCreateInput{
		Requester: "A", Department: "B", Description: "C", Urgency: "Low",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), ticket.ID, domain.MaintenanceStatusOpen))
	assert.Equal(t, 0, repo.statusWrites)
	assert.Empty(t, dispatcher.ofType(events.EventMaintenanceStatusChanged))
}

func TestMaintenanceServiceReopenClearsCompletion(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	svc := NewMaintenanceService(repo, nil)

	ticket, err := svc.Create(context.Background(), MaintenanceCreateInput{
		Requester: "A", Department: "B", Description: "C", Urgency: "Low",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), ticket.ID, domain.MaintenanceStatusCompleted))
	require.NoError(t, svc.SetStatus(context.Background(), ticket.ID, domain.MaintenanceStatusOpen))

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusOpen, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestMaintenanceServiceSetStatusNotFound(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	svc := NewMaintenanceService(repo, nil)

	err := svc.SetStatus(context.Background(), "ffffffffffffffffffffffff", domain.MaintenanceStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, 404, util.ToDomainError(err).HTTPStatus)
}
