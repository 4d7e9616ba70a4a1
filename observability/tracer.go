package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/resultkit"

// Span names.
const (
	SpanWrite = "result.write"
	SpanRead  = "result.read"
)

// Attribute keys.
const (
	AttrComponent = "result.component"
	AttrLocation  = "result.location"
	AttrSize      = "result.size_bytes"
	AttrOperation = "operation"
	AttrStatus    = "status"
	AttrErrorCode = "error.code"
)

// Status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Tracer returns the resultkit tracer from tp, or from the global provider
// when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(instrumentationName)
}
