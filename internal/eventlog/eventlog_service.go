package eventlog

import (
	"context"
	"strings"
	"sync"
	"time"

	eventlogerrors "go-hris-audit/internal/eventlog/errors"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/shared/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=eventlog_service.go -destination=mock/eventlog_service_mock.go -package=mock
type Service interface {
	Append(ctx context.Context, messageID string, eventType events.EventType, payload events.EmployeePayload) (EmployeeEvent, error)
	ListByEmployeeID(ctx context.Context, employeeID string, page pagination.Request) (pagination.Page[EmployeeEvent], error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("eventlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("eventlog.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    time.Now,
	}
}

// Append stores the event with a store-assigned id and timestamp. A message id
// that is already stored yields ErrDuplicateEvent and no new row.
func (s *service) Append(
	ctx context.Context,
	messageID string,
	eventType events.EventType,
	payload events.EmployeePayload,
) (EmployeeEvent, error) {
	msg := events.EmployeeEventMessage{EventType: eventType, Employee: payload}
	if err := msg.Validate(); err != nil {
		return EmployeeEvent{}, eventlogerrors.ErrMalformedMessage.WithCause(err)
	}
	birthday, _ := payload.BirthdayDate()

	evt := EmployeeEvent{
		ID:             uuid.New(),
		MessageID:      optional(messageID),
		EventType:      eventType,
		EmployeeID:     strings.TrimSpace(payload.ID),
		Email:          payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Birthday:       birthday,
		DepartmentName: payload.DepartmentName,
		CreatedAt:      s.stamp(),
	}

	inserted, err := s.repo.Append(ctx, &evt)
	if err != nil {
		s.logger.Error("append employee event failed",
			zap.String("employee_id", evt.EmployeeID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return EmployeeEvent{}, mapRepositoryError(err)
	}
	if !inserted {
		return EmployeeEvent{}, eventlogerrors.ErrDuplicateEvent
	}

	s.logger.Debug("employee event appended",
		zap.String("event_id", evt.ID.String()),
		zap.String("employee_id", evt.EmployeeID),
		zap.String("event_type", string(eventType)),
	)
	return evt, nil
}

func (s *service) ListByEmployeeID(
	ctx context.Context,
	employeeID string,
	page pagination.Request,
) (pagination.Page[EmployeeEvent], error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return pagination.Page[EmployeeEvent]{}, eventlogerrors.ErrMissingEmployeeID
	}

	evts, total, err := s.repo.FindByEmployeeID(ctx, employeeID, page)
	if err != nil {
		s.logger.Error("list employee events failed", zap.String("employee_id", employeeID), zap.Error(err))
		return pagination.Page[EmployeeEvent]{}, mapRepositoryError(err)
	}

	return pagination.NewPage(evts, total, page), nil
}

// stamp returns strictly increasing UTC times at the store's microsecond
// precision, so events appended in order list in the same order.
func (s *service) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
