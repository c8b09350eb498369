package eventlog

import (
	"time"

	"go-hris-audit/internal/events"
)

type EmployeeEventResponse struct {
	ID             string `json:"id"`
	EventType      string `json:"event_type"`
	EmployeeID     string `json:"employee_id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Birthday       string `json:"birthday,omitempty"`
	DepartmentName string `json:"department_name"`
	CreatedAt      string `json:"created_at"`
}

func MapToResponse(evt EmployeeEvent) EmployeeEventResponse {
	return EmployeeEventResponse{
		ID:             evt.ID.String(),
		EventType:      string(evt.EventType),
		EmployeeID:     evt.EmployeeID,
		Email:          evt.Email,
		FirstName:      evt.FirstName,
		LastName:       evt.LastName,
		Birthday:       events.FormatDate(evt.Birthday),
		DepartmentName: evt.DepartmentName,
		CreatedAt:      evt.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
