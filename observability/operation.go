package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/resultkit/errors"
)

// Telemetry traces and meters the storage operations of one component.
type Telemetry struct {
	component string
	tracer    trace.Tracer
	metrics   *Metrics
}

// New returns Telemetry for component. Nil providers fall back to the otel
// global providers.
func New(component string, tp trace.TracerProvider, mp metric.MeterProvider) (*Telemetry, error) {
	metrics, err := NewMetrics(Meter(mp))
	if err != nil {
		return nil, err
	}
	return &Telemetry{component: component, tracer: Tracer(tp), metrics: metrics}, nil
}

// Component returns the component name recorded on every span and metric.
func (t *Telemetry) Component() string { return t.component }

// Operation is an in-flight traced read or write.
type Operation struct {
	t     *Telemetry
	name  string
	span  trace.Span
	start time.Time
}

// Start opens a span named name for an operation on location.
func (t *Telemetry) Start(ctx context.Context, name, location string) (context.Context, *Operation) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String(AttrComponent, t.component),
		attribute.String(AttrLocation, location),
	))
	return ctx, &Operation{t: t, name: name, span: span, start: time.Now()}
}

// Elapsed returns the time since the operation started.
func (o *Operation) Elapsed() time.Duration { return time.Since(o.start) }

// End closes the span and records the operation's metrics. size is the
// payload length and is ignored when err is non-nil.
func (o *Operation) End(ctx context.Context, size int, err error) {
	duration := o.Elapsed()
	status := StatusOK
	if err != nil {
		status = StatusError
		code := string(errors.CodeOf(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		o.span.SetAttributes(attribute.String(AttrErrorCode, code))
		o.t.metrics.RecordError(ctx, code, o.t.component)
	} else {
		o.span.SetAttributes(attribute.Int(AttrSize, size))
	}
	o.span.SetAttributes(attribute.String(AttrStatus, status))
	o.span.End()
	o.t.metrics.RecordOperation(ctx, o.t.component, o.name, status, duration, size)
}
