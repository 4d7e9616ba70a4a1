// Package observability provides OpenTelemetry tracing and metrics for
// result storage operations.
//
// Instruments are created on the supplied providers, or on the otel global
// providers when none are given, so nothing is exported until the host
// process installs an SDK:
//
//	tel, err := observability.New("result.local", nil, nil)
//	ctx, op := tel.Start(ctx, observability.SpanWrite, "42.bin")
//	err = store.Upload(ctx, "42.bin", data)
//	op.End(ctx, len(data), err)
package observability
