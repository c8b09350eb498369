package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const InstrumentationName = "go-hris-audit"

var (
	ErrorAttribute      = attribute.Key("error")
	TopicAttribute      = attribute.Key("messaging.destination")
	EventTypeAttribute  = attribute.Key("event.type")
	EmployeeIDAttribute = attribute.Key("employee.id")
	AttemptAttribute    = attribute.Key("messaging.attempt")
	MessageIDAttribute  = attribute.Key("messaging.message.id")
)

type Config struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

func (c Config) Meter() metric.Meter {
	return c.MeterProvider.Meter(InstrumentationName)
}

func (c Config) Tracer() trace.Tracer {
	return c.TracerProvider.Tracer(InstrumentationName)
}

// Option specifies instrumentation configuration options.
type Option interface {
	apply(*Config)
}

type meterProviderOption struct{ metric.MeterProvider }

func (o meterProviderOption) apply(c *Config) {
	c.MeterProvider = o.MeterProvider
}

// WithMeterProvider overrides the global metric.MeterProvider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return meterProviderOption{provider}
}

type tracerProviderOption struct{ trace.TracerProvider }

func (o tracerProviderOption) apply(c *Config) {
	c.TracerProvider = o.TracerProvider
}

// WithTracerProvider overrides the global trace.TracerProvider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return tracerProviderOption{provider}
}

// NewConfig starts from the global providers and applies opts.
func NewConfig(opts ...Option) Config {
	c := Config{
		MeterProvider:  otel.GetMeterProvider(),
		TracerProvider: otel.GetTracerProvider(),
	}

	for _, opt := range opts {
		opt.apply(&c)
	}

	return c
}
