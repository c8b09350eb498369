package eventlog

import (
	"time"

	"go-hris-audit/internal/events"

	"github.com/google/uuid"
)

// EmployeeEvent is one received employee mutation. Rows are written once and
// never updated. MessageID is unique, so a redelivered message is stored once.
type EmployeeEvent struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MessageID      *string          `gorm:"size:64;uniqueIndex:uq_employee_events_message_id" json:"message_id,omitempty"`
	EventType      events.EventType `gorm:"size:16;not null" json:"event_type"`
	EmployeeID     string           `gorm:"size:64;not null;index:idx_employee_events_employee,priority:1" json:"employee_id"`
	Email          string           `gorm:"size:255" json:"email"`
	FirstName      string           `gorm:"size:100" json:"first_name"`
	LastName       string           `gorm:"size:100" json:"last_name"`
	Birthday       *time.Time       `gorm:"type:date" json:"birthday,omitempty"`
	DepartmentName string           `gorm:"size:255" json:"department_name"`
	CreatedAt      time.Time        `gorm:"not null;index:idx_employee_events_employee,priority:2" json:"created_at"`
}

func (EmployeeEvent) TableName() string {
	return "employee_events"
}
