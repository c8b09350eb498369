package events

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

func (t EventType) Valid() bool {
	switch t {
	case EventCreated, EventUpdated, EventDeleted:
		return true
	}
	return false
}

// Header keys stamped on every employee event message.
const (
	HeaderEventType  = "event_type"
	HeaderRoutingKey = "routing_key"
	HeaderMessageID  = "message_id"
	HeaderCreatedAt  = "created_at"
)

// EmployeePayload is the employee as seen by other services. The department
// travels by name; the owning service's numeric id never leaves it.
type EmployeePayload struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Birthday       string `json:"birthday,omitempty"`
	DepartmentName string `json:"departmentName"`
}

// EmployeeEventMessage is the JSON body of a message on the employee exchange.
type EmployeeEventMessage struct {
	EventType EventType       `json:"eventType"`
	Employee  EmployeePayload `json:"employee"`
}

var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrMissingEmployeeID = errors.New("employee id is missing")
)

// BirthdayDate parses the payload birthday; an empty birthday yields nil.
func (p EmployeePayload) BirthdayDate() (*time.Time, error) {
	if strings.TrimSpace(p.Birthday) == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, p.Birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday %q: %w", p.Birthday, err)
	}
	return &d, nil
}

// Validate checks the fields every consumer relies on.
func (m EmployeeEventMessage) Validate() error {
	if !m.EventType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, m.EventType)
	}
	if strings.TrimSpace(m.Employee.ID) == "" {
		return ErrMissingEmployeeID
	}
	if _, err := m.Employee.BirthdayDate(); err != nil {
		return err
	}
	return nil
}

// FormatDate renders a date-only value, nil as "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
