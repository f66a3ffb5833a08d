package domain

import "time"

// Maintenance ticket statuses. Open and Completed are the only two states;
// both transitions are reversible.
const (
	MaintenanceStatusOpen      = "Open"
	MaintenanceStatusCompleted = "Completed"
)

// ValidMaintenanceStatus reports whether s is one of the two allowed states.
func ValidMaintenanceStatus(s string) bool {
	return s == MaintenanceStatusOpen || s == MaintenanceStatusCompleted
}

// MaintenanceTicket is a general maintenance request with an urgency level.
type MaintenanceTicket struct {
	ID          string
	TicketID    string
	Requester   string
	Department  string
	Description string
	Urgency     string
	Status      string
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// ClassroomTicket is the classroom-flavored maintenance request, filed
// against a particular item and location.
type ClassroomTicket struct {
	ID          string
	Reference   string
	Department  string
	Requester   string
	Particulars string
	Location    string
	Description string
	Status      string
	DateFiled   time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}
