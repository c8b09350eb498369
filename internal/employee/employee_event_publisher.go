package employee

import (
	"context"

	"go-hris-audit/internal/events"
)

//go:generate mockgen -source=employee_event_publisher.go -destination=mock/employee_event_publisher_mock.go -package=mock
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.EventType, empl Employee) error
}

// MessagePublisher is satisfied by *producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, eventType events.EventType, payload any) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, events.EventType, Employee) error {
	return nil
}

type brokerEventPublisher struct {
	publisher MessagePublisher
}

func NewBrokerEventPublisher(publisher MessagePublisher) EventPublisher {
	return &brokerEventPublisher{publisher: publisher}
}

// Publish keys the message by employee id so one employee's events share a
// partition.
func (p *brokerEventPublisher) Publish(ctx context.Context, eventType events.EventType, empl Employee) error {
	msg := ToEventMessage(eventType, empl)
	return p.publisher.Publish(ctx, msg.Employee.ID, eventType, msg)
}

func ToEventMessage(eventType events.EventType, empl Employee) events.EmployeeEventMessage {
	payload := events.EmployeePayload{
		ID:             empl.ID.String(),
		Email:          empl.Email,
		Birthday:       events.FormatDate(empl.Birthday),
		DepartmentName: empl.DepartmentName(),
	}
	if empl.Name != nil {
		payload.FirstName = empl.Name.FirstName
		payload.LastName = empl.Name.LastName
	}
	return events.EmployeeEventMessage{
		EventType: eventType,
		Employee:  payload,
	}
}
