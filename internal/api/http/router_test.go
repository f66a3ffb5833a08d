package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/api/http/handlers"
	"github.com/campus-kit/registrar-service/internal/config"
	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/observability"
	"github.com/campus-kit/registrar-service/internal/persistence"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
)

type memTicketRepo struct {
	byID  map[string]*domain.Ticket
	order []string
}

func (r *memTicketRepo) Insert(_ context.Context, t *domain.Ticket) error {
	clone := *t
	r.byID[t.ID] = &clone
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memTicketRepo) InsertMany(ctx context.Context, tickets []*domain.Ticket) (int, error) {
	for _, t := range tickets {
		_ = r.Insert(ctx, t)
	}
	return len(tickets), nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *t
	return &clone, nil
}

func (r *memTicketRepo) List(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *memTicketRepo) Update(_ context.Context, t *domain.Ticket) error {
	if _, ok := r.byID[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *memTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type memMaintenanceRepo struct {
	byID map[string]*domain.MaintenanceTicket
}

func (r *memMaintenanceRepo) Insert(_ context.Context, t *domain.MaintenanceTicket) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *memMaintenanceRepo) GetByID(_ context.Context, id string) (*domain.MaintenanceTicket, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *t
	return &clone, nil
}

func (r *memMaintenanceRepo) List(_ context.Context, _ repository.MaintenanceFilter) ([]domain.MaintenanceTicket, error) {
	out := make([]domain.MaintenanceTicket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memMaintenanceRepo) UpdateStatus(_ context.Context, id, status string, completedAt *time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

func (r *memMaintenanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type memClassroomRepo struct {
	byID map[string]*domain.ClassroomTicket
}

func (r *memClassroomRepo) Insert(_ context.Context, t *domain.ClassroomTicket) error {
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *memClassroomRepo) GetByID(_ context.Context, id string) (*domain.ClassroomTicket, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *t
	return &clone, nil
}

func (r *memClassroomRepo) List(_ context.Context, _ repository.ClassroomFilter) ([]domain.ClassroomTicket, error) {
	out := make([]domain.ClassroomTicket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memClassroomRepo) UpdateStatus(_ context.Context, id, status string, completedAt *time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

func (r *memClassroomRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type memLibraryRepo struct {
	logs []domain.LibraryLog
}

func (r *memLibraryRepo) Insert(_ context.Context, log *domain.LibraryLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memLibraryRepo) List(_ context.Context, filter repository.LibraryLogFilter) ([]domain.LibraryLog, error) {
	out := r.logs
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memLibraryRepo) Count(_ context.Context, _ repository.LibraryLogFilter) (int, error) {
	return len(r.logs), nil
}

type memUserRepo struct {
	byUsername map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	clone := *user
	r.byUsername[user.Username] = &clone
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) Count(_ context.Context) (int, error) {
	return len(r.byUsername), nil
}

type testEnv struct {
	app     *fiber.App
	tickets *memTicketRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tickets := &memTicketRepo{byID: make(map[string]*domain.Ticket)}
	maintenance := &memMaintenanceRepo{byID: make(map[string]*domain.MaintenanceTicket)}
	classroom := &memClassroomRepo{byID: make(map[string]*domain.ClassroomTicket)}
	library := &memLibraryRepo{}
	users := &memUserRepo{byUsername: make(map[string]*domain.User)}

	logger := zap.NewNop()
	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}

	ticketService := service.NewTicketService(tickets, nil)
	maintenanceService := service.NewMaintenanceService(maintenance, nil)
	classroomService := service.NewClassroomService(classroom, nil)
	libraryService := service.NewLibraryService(library, nil)
	reportService := service.NewReportService(tickets, nil, 0, logger)
	authService := service.NewAuthService(authCfg, users, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(&persistence.Postgres{}, &persistence.Redis{}),
		Auth:        handlers.NewAuthHandler(authService),
		Tickets:     handlers.NewTicketsHandler(ticketService),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceService),
		Classroom:   handlers.NewClassroomHandler(classroomService),
		Logs:        handlers.NewLogsHandler(libraryService),
		Reports:     handlers.NewReportsHandler(reportService),
	})

	return &testEnv{app: app, tickets: tickets}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	payload := make(map[string]interface{})
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestCreateTicketMissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/tickets", map[string]interface{}{
		"requestType": "TOR",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields: studentName, dateReceived", body["error"])
}

func TestCreateTicketSuccess(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/tickets", map[string]interface{}{
		"studentName":  "Juan Dela Cruz",
		"requestType":  "Transcript of Records",
		"dateReceived": "2025-10-01T08:04:00Z",
		"targetDays":   "5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	id, _ := body["_id"].(string)
	assert.True(t, domain.ValidID(id))
	assert.Equal(t, "011020250804JDC", body["ref"])
}

func TestCreateTicketBulk(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/tickets", []map[string]interface{}{
		{"studentName": "A", "requestType": "TOR"},
		{"requester": "Records Office", "requestType": "CAV"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), body["insertedCount"])

	resp, body = env.do(t, "POST", "/api/tickets", []map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Empty array", body["error"])
}

func TestPatchTicketInvalidID(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "PATCH", "/api/tickets/not-hex", map[string]interface{}{
		"status": "Released",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or missing id", body["error"])
	assert.Empty(t, env.tickets.byID)
}

func TestPatchTicketNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "PATCH", "/api/tickets/ffffffffffffffffffffffff", map[string]interface{}{
		"status": "Released",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
}

func TestReleaseFlowComputesDerivedFields(t *testing.T) {
	env := newTestEnv(t)

	_, created := env.do(t, "POST", "/api/tickets", map[string]interface{}{
		"studentName":  "Maria Reyes",
		"requestType":  "Diploma",
		"dateReceived": "2025-01-01",
		"targetDays":   5,
	})
	id := created["_id"].(string)

	resp, body := env.do(t, "PATCH", "/api/tickets/"+id, map[string]interface{}{
		"status":      "Released",
		"dateRelease": "2025-01-05",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	stored := env.tickets.byID[id]
	require.NotNil(t, stored)
	assert.Equal(t, domain.TicketStatusReleased, stored.Status)
	require.NotNil(t, stored.ProcessingDays)
	assert.Equal(t, 4, *stored.ProcessingDays)
	assert.Equal(t, "On time", stored.Timeliness)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "PUT", "/api/tickets/ffffffffffffffffffffffff", map[string]interface{}{})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, resp.Header.Get("Allow"))
}

func TestMaintenanceStatusValidation(t *testing.T) {
	env := newTestEnv(t)

	_, created := env.do(t, "POST", "/api/maintenance", map[string]interface{}{
		"requester":   "J. Santos",
		"department":  "Registrar",
		"description": "Broken aircon",
		"urgency":     "High",
	})
	id := created["_id"].(string)

	resp, body := env.do(t, "PATCH", "/api/maintenance/"+id, map[string]interface{}{
		"status": "Done",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid status", body["error"])

	resp, body = env.do(t, "PATCH", "/api/maintenance/"+id, map[string]interface{}{
		"status": "Completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
}

func TestLibrarySignInAndListing(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/logs/signin", map[string]interface{}{
		"name":      "Ana Cruz",
		"yearLevel": "3rd Year",
		"purpose":   "Research",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	resp, body = env.do(t, "GET", "/api/logs?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["pageSize"])
	rows, ok := body["rows"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Ana Cruz", row["name"])
	assert.Equal(t, "qr", row["via"])
	assert.NotEmpty(t, row["date"])
	assert.NotEmpty(t, row["timeIn"])
}

func TestLibraryManualLogRequiresFullFields(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/logs", map[string]interface{}{
		"name":    "Ana Cruz",
		"purpose": "Research",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields: date, timeIn, yearLevel, course", body["error"])
}

func TestLoginSeedsDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/auth/login", map[string]interface{}{
		"username": "admin",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["role"])

	resp, body = env.do(t, "POST", "/api/auth/login", map[string]interface{}{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestWeeklyReportEndpoint(t *testing.T) {
	env := newTestEnv(t)

	_, created := env.do(t, "POST", "/api/tickets", map[string]interface{}{
		"studentName":  "Juan",
		"requestType":  "TOR",
		"dateReceived": "2025-01-06",
		"targetDays":   3,
	})
	id := created["_id"].(string)
	env.do(t, "PATCH", "/api/tickets/"+id, map[string]interface{}{
		"status":      "Released",
		"dateRelease": "2025-01-08",
	})

	req := httptest.NewRequest("GET", "/api/reports/weekly", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buckets []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "Wk of 2025-01-06", buckets[0]["week"])
	assert.Equal(t, float64(1), buckets[0]["completed"])
	assert.Equal(t, float64(2), buckets[0]["avg"])
	assert.Equal(t, float64(100), buckets[0]["pctWithin"])
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["ts"])

	// No backing stores are wired in tests, so readiness reports failure.
	resp, body = env.do(t, "GET", "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
}
