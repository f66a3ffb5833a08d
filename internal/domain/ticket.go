package domain

import "time"

// Registrar ticket statuses. The status field is free-form by contract;
// only the terminal value carries behavior (release-date auto-stamping).
const (
	TicketStatusReceived = "Received"
	TicketStatusReleased = "Released"
)

// Ticket is a registrar document-request ticket.
type Ticket struct {
	ID                       string
	Ref                      string
	StudentID                string
	StudentName              string
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
	ProcessingDays           *int
	Timeliness               string
	CreatedAt                time.Time
}

// Recompute refreshes the derived fields from the record's own dates and
// target. Must be called after any merge of incoming changes.
func (t *Ticket) Recompute() {
	t.ProcessingDays, t.Timeliness = ComputeTimeliness(t.DateReceived, t.DateRelease, t.TargetDays)
}

// Completed reports whether the ticket counts as completed for reporting:
// released status or a known release date.
func (t *Ticket) Completed() bool {
	return t.Status == TicketStatusReleased || t.DateRelease != nil
}

// EffectiveProcessingDays returns the stored derived value, falling back to
// the calculator when it was never persisted.
func (t *Ticket) EffectiveProcessingDays() *int {
	if t.ProcessingDays != nil {
		return t.ProcessingDays
	}
	return ProcessingDays(t.DateReceived, t.DateRelease)
}
