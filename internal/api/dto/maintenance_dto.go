package dto

import (
	"time"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// CreateMaintenanceRequest is a general maintenance ticket payload.
type CreateMaintenanceRequest struct {
	TicketID    string `json:"ticketId"`
	Requester   string `json:"requester"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// CreateClassroomRequest is a classroom maintenance ticket payload.
type CreateClassroomRequest struct {
	Reference   string `json:"reference"`
	Department  string `json:"department"`
	Requester   string `json:"requester"`
	Particulars string `json:"particulars"`
	Location    string `json:"location"`
	Description string `json:"description"`
	DateFiled   string `json:"dateFiled"`
}

// StatusPatchRequest carries the only mutable maintenance field.
type StatusPatchRequest struct {
	Status string `json:"status"`
}

// MaintenanceResponse is the wire shape of a general maintenance ticket.
type MaintenanceResponse struct {
	ID          string     `json:"_id"`
	TicketID    string     `json:"ticketId"`
	Requester   string     `json:"requester"`
	Department  string     `json:"department"`
	Description string     `json:"description"`
	Urgency     string     `json:"urgency"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MaintenanceResponseFrom maps a domain ticket to its wire shape.
func MaintenanceResponseFrom(t *domain.MaintenanceTicket) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          t.ID,
		TicketID:    t.TicketID,
		Requester:   t.Requester,
		Department:  t.Department,
		Description: t.Description,
		Urgency:     t.Urgency,
		Status:      t.Status,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

// ClassroomResponse is the wire shape of a classroom ticket.
type ClassroomResponse struct {
	ID          string     `json:"_id"`
	Reference   string     `json:"reference"`
	Department  string     `json:"department"`
	Requester   string     `json:"requester"`
	Particulars string     `json:"particulars"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DateFiled   time.Time  `json:"dateFiled"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ClassroomResponseFrom maps a domain ticket to its wire shape.
func ClassroomResponseFrom(t *domain.ClassroomTicket) ClassroomResponse {
	return ClassroomResponse{
		ID:          t.ID,
		Reference:   t.Reference,
		Department:  t.Department,
		Requester:   t.Requester,
		Particulars: t.Particulars,
		Location:    t.Location,
		Description: t.Description,
		Status:      t.Status,
		DateFiled:   t.DateFiled,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
