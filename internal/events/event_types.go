package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated            EventType = "registrar_ticket_created"
	EventTicketReleased           EventType = "registrar_ticket_released"
	EventMaintenanceStatusChanged EventType = "maintenance_status_changed"
	EventLibrarySignIn            EventType = "library_sign_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  string      `json:"record_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Ref         string `json:"ref"`
	StudentName string `json:"student_name"`
	RequestType string `json:"request_type"`
}

// TicketReleasedPayload payload.
type TicketReleasedPayload struct {
	Ref            string `json:"ref"`
	ProcessingDays *int   `json:"processing_days,omitempty"`
	Timeliness     string `json:"timeliness,omitempty"`
}

// MaintenanceStatusChangedPayload payload.
type MaintenanceStatusChangedPayload struct {
	Flavor    string `json:"flavor"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// LibrarySignInPayload payload.
type LibrarySignInPayload struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Via     string `json:"via"`
}
