package eventlog

import (
	"context"
	"fmt"
	"time"

	"go-hris-audit/internal/events"
	"go-hris-audit/internal/shared/pagination"
	"go-hris-audit/internal/shared/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Names of the spans created by InstrumentedService.
const (
	AppendSpanName = "eventlog.Service.Append"
	ListSpanName   = "eventlog.Service.ListByEmployeeID"
)

var _ Service = &InstrumentedService{}

// InstrumentedService records traces and duration histograms around a Service.
type InstrumentedService struct {
	service Service

	tracer         trace.Tracer
	appendDuration metric.Int64Histogram
	listDuration   metric.Int64Histogram
}

func NewInstrumentedService(service Service, opts ...telemetry.Option) (*InstrumentedService, error) {
	cfg := telemetry.NewConfig(opts...)

	is := &InstrumentedService{
		service: service,
		tracer:  cfg.Tracer(),
	}

	if err := is.registerMetrics(cfg.Meter()); err != nil {
		return nil, err
	}

	return is, nil
}

func (is *InstrumentedService) registerMetrics(meter metric.Meter) error {
	var err error

	if is.appendDuration, err = meter.Int64Histogram(
		"eventlog.append.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of employee event appends."),
	); err != nil {
		return fmt.Errorf("eventlog.InstrumentedService: failed to register metric: %w", err)
	}

	if is.listDuration, err = meter.Int64Histogram(
		"eventlog.list.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of employee event queries."),
	); err != nil {
		return fmt.Errorf("eventlog.InstrumentedService: failed to register metric: %w", err)
	}

	return nil
}

func (is *InstrumentedService) Append(
	ctx context.Context,
	messageID string,
	eventType events.EventType,
	payload events.EmployeePayload,
) (evt EmployeeEvent, err error) {
	ctx, span := is.tracer.Start(ctx, AppendSpanName, trace.WithAttributes(
		telemetry.MessageIDAttribute.String(messageID),
		telemetry.EventTypeAttribute.String(string(eventType)),
		telemetry.EmployeeIDAttribute.String(payload.ID),
	))
	start := time.Now()

	defer func() {
		is.appendDuration.Record(ctx, time.Since(start).Milliseconds(),
			metric.WithAttributes(telemetry.ErrorAttribute.Bool(err != nil)))
		endSpan(span, err)
	}()

	evt, err = is.service.Append(ctx, messageID, eventType, payload)

	return
}

func (is *InstrumentedService) ListByEmployeeID(
	ctx context.Context,
	employeeID string,
	page pagination.Request,
) (result pagination.Page[EmployeeEvent], err error) {
	ctx, span := is.tracer.Start(ctx, ListSpanName, trace.WithAttributes(
		telemetry.EmployeeIDAttribute.String(employeeID),
		attribute.Int("page", page.Page),
		attribute.Int("page_size", page.PageSize),
	))
	start := time.Now()

	defer func() {
		is.listDuration.Record(ctx, time.Since(start).Milliseconds(),
			metric.WithAttributes(telemetry.ErrorAttribute.Bool(err != nil)))
		endSpan(span, err)
	}()

	result, err = is.service.ListByEmployeeID(ctx, employeeID, page)

	return
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
