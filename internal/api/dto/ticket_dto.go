package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/service"
)

// CreateTicketRequest is a registrar ticket creation payload. Date-like
// fields arrive as strings in one of the accepted layouts; targetDays may be
// a number, a numeric string, an empty string, or null.
type CreateTicketRequest struct {
	Ref                      string          `json:"ref"`
	StudentID                string          `json:"studentId"`
	StudentName              string          `json:"studentName"`
	Requester                string          `json:"requester"`
	RequestType              string          `json:"requestType"`
	DateReceived             string          `json:"dateReceived"`
	ScheduleRelease          string          `json:"scheduleRelease"`
	DateRelease              string          `json:"dateRelease"`
	TargetDays               json.RawMessage `json:"targetDays"`
	Remarks                  string          `json:"remarks"`
	Staff                    string          `json:"staff"`
	Status                   string          `json:"status"`
	ORNumber                 string          `json:"orNumber"`
	DateReceivedFromIncharge string          `json:"dateReceivedFromIncharge"`
	ReceivedBy               string          `json:"receivedBy"`
}

// ToInput converts the request into a validated service input.
func (r CreateTicketRequest) ToInput() (service.TicketCreateInput, error) {
	var input service.TicketCreateInput

	dateReceived, err := ParseDate("dateReceived", r.DateReceived)
	if err != nil {
		return input, err
	}
	scheduleRelease, err := ParseDate("scheduleRelease", r.ScheduleRelease)
	if err != nil {
		return input, err
	}
	dateRelease, err := ParseDate("dateRelease", r.DateRelease)
	if err != nil {
		return input, err
	}
	fromIncharge, err := ParseDate("dateReceivedFromIncharge", r.DateReceivedFromIncharge)
	if err != nil {
		return input, err
	}
	targetDays, err := ParseOptionalNumber("targetDays", r.TargetDays)
	if err != nil {
		return input, err
	}

	input = service.TicketCreateInput{
		Ref:                      r.Ref,
		StudentID:                r.StudentID,
		StudentName:              r.StudentName,
		Requester:                r.Requester,
		RequestType:              r.RequestType,
		DateReceived:             dateReceived,
		ScheduleRelease:          scheduleRelease,
		DateRelease:              dateRelease,
		TargetDays:               targetDays,
		Remarks:                  r.Remarks,
		Staff:                    r.Staff,
		Status:                   r.Status,
		ORNumber:                 r.ORNumber,
		DateReceivedFromIncharge: fromIncharge,
		ReceivedBy:               r.ReceivedBy,
	}
	return input, nil
}

// Allow-listed PATCH fields for registrar tickets.
var ticketPatchStringFields = map[string]func(*service.TicketPatch, *string){
	"status":      func(p *service.TicketPatch, v *string) { p.Status = v },
	"studentId":   func(p *service.TicketPatch, v *string) { p.StudentID = v },
	"studentName": func(p *service.TicketPatch, v *string) { p.StudentName = v },
	"requestType": func(p *service.TicketPatch, v *string) { p.RequestType = v },
	"staff":       func(p *service.TicketPatch, v *string) { p.Staff = v },
	"remarks":     func(p *service.TicketPatch, v *string) { p.Remarks = v },
	"orNumber":    func(p *service.TicketPatch, v *string) { p.ORNumber = v },
	"receivedBy":  func(p *service.TicketPatch, v *string) { p.ReceivedBy = v },
}

// ParseTicketPatch extracts the allow-listed change set from a PATCH body.
// Fields outside the allow list are ignored. JSON null clears a field; an
// empty-string date counts as not supplied.
func ParseTicketPatch(body []byte) (service.TicketPatch, error) {
	var patch service.TicketPatch

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return patch, errors.New("Invalid JSON body")
	}

	for key, assign := range ticketPatchStringFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var val *string
		if err := json.Unmarshal(raw, &val); err != nil {
			return patch, err
		}
		if val == nil {
			empty := ""
			val = &empty
		}
		assign(&patch, val)
	}

	if raw, ok := fields["targetDays"]; ok {
		target, err := ParseOptionalNumber("targetDays", raw)
		if err != nil {
			return patch, err
		}
		patch.TargetDays = target
		patch.TargetDaysSet = true
	}

	if t, set, err := parsePatchDate(fields, "dateRelease"); err != nil {
		return patch, err
	} else if set {
		patch.DateRelease = t
		patch.DateReleaseSet = true
	}
	if t, set, err := parsePatchDate(fields, "scheduleRelease"); err != nil {
		return patch, err
	} else if set {
		patch.ScheduleRelease = t
		patch.ScheduleReleaseSet = true
	}
	if t, set, err := parsePatchDate(fields, "dateReceivedFromIncharge"); err != nil {
		return patch, err
	} else if set {
		patch.DateReceivedFromIncharge = t
		patch.DateReceivedFromInchargeSet = true
	}

	return patch, nil
}

// parsePatchDate reads an optional date field: null clears (set, nil),
// empty string counts as absent, anything else must parse.
func parsePatchDate(fields map[string]json.RawMessage, key string) (*time.Time, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, false, nil
	}
	var val *string
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, false, err
	}
	if val == nil {
		return nil, true, nil
	}
	t, err := ParseDate(key, *val)
	if err != nil {
		return nil, false, err
	}
	if t == nil {
		return nil, false, nil
	}
	return t, true, nil
}

// TicketResponse is the wire shape of a registrar ticket.
type TicketResponse struct {
	ID                       string     `json:"_id"`
	Ref                      string     `json:"ref"`
	StudentID                string     `json:"studentId"`
	StudentName              string     `json:"studentName"`
	RequestType              string     `json:"requestType"`
	DateReceived             *time.Time `json:"dateReceived"`
	ScheduleRelease          *time.Time `json:"scheduleRelease"`
	DateRelease              *time.Time `json:"dateRelease"`
	TargetDays               *float64   `json:"targetDays"`
	Remarks                  string     `json:"remarks"`
	Staff                    string     `json:"staff"`
	Status                   string     `json:"status"`
	ORNumber                 string     `json:"orNumber"`
	DateReceivedFromIncharge *time.Time `json:"dateReceivedFromIncharge"`
	ReceivedBy               string     `json:"receivedBy"`
	ProcessingDays           *int       `json:"processingDays"`
	Timeliness               string     `json:"timeliness"`
	CreatedAt                time.Time  `json:"createdAt"`
}

// TicketResponseFrom maps a domain ticket to its wire shape.
func TicketResponseFrom(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                       t.ID,
		Ref:                      t.Ref,
		StudentID:                t.StudentID,
		StudentName:              t.StudentName,
		RequestType:              t.RequestType,
		DateReceived:             t.DateReceived,
		ScheduleRelease:          t.ScheduleRelease,
		DateRelease:              t.DateRelease,
		TargetDays:               t.TargetDays,
		Remarks:                  t.Remarks,
		Staff:                    t.Staff,
		Status:                   t.Status,
		ORNumber:                 t.ORNumber,
		DateReceivedFromIncharge: t.DateReceivedFromIncharge,
		ReceivedBy:               t.ReceivedBy,
		ProcessingDays:           t.ProcessingDays,
		Timeliness:               t.Timeliness,
		CreatedAt:                t.CreatedAt,
	}
}
