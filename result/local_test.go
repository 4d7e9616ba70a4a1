package result

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/observability"
)

func tempLocal(t *testing.T, opts ...Option) *Local {
	t.Helper()
	l, err := NewLocal(append([]Option{WithDir(t.TempDir()), WithLogger(logger.NewNop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	return l
}

func TestLocal_WriteRendersTemplate(t *testing.T) {
	l := tempLocal(t, WithLocation("{thing}.txt"))
	out, err := l.Write(context.Background(), "so much data", map[string]any{"thing": 42})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if out.Location() != "42.txt" {
		t.Errorf("expected location 42.txt, got %q", out.Location())
	}
	if out.Value() != "so much data" {
		t.Errorf("expected written value, got %v", out.Value())
	}
	if l.Location() != "{thing}.txt" || l.HasValue() {
		t.Error("expected the configured result to be unchanged")
	}
	if _, err := os.Stat(filepath.Join(l.Dir(), "42.txt")); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}

func TestLocal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"int", 42, int64(42)},
		{"string", "stringy", "stringy"},
		{"float", 2.5, 2.5},
		{"nested", map[string]any{"x": []any{55}, "y": nil}, map[string]any{"x": []any{int64(55)}, "y": nil}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := tempLocal(t)
			written, err := l.Write(ctx, tc.in, nil)
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			read, err := l.Read(ctx, written.Location())
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !read.HasValue() {
				t.Error("expected a materialized value")
			}
			if diff := cmp.Diff(tc.want, read.Value()); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocal_DefaultLocation(t *testing.T) {
	out, err := tempLocal(t).Write(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(out.Location(), "result-") {
		t.Errorf("expected generated location, got %q", out.Location())
	}
}

func TestLocal_ExistsNestedTemplate(t *testing.T) {
	ctx := context.Background()
	l := tempLocal(t, WithLocation("{flow}/{task}/out-{index}.bin"))
	params := map[string]any{"flow": "etl", "task": "load", "index": 3}
	rel := filepath.Join("etl", "load", "out-3.bin")
	abs := filepath.Join(l.Dir(), rel)

	for _, p := range []string{rel, abs} {
		ok, err := l.Exists(ctx, p)
		if err != nil || ok {
			t.Errorf("expected %q not to exist before write, got %v, %v", p, ok, err)
		}
	}
	out, err := l.Write(ctx, []int{1, 2}, params)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if out.Location() != rel {
		t.Errorf("expected location %q, got %q", rel, out.Location())
	}
	for _, p := range []string{rel, abs} {
		ok, err := l.Exists(ctx, p)
		if err != nil || !ok {
			t.Errorf("expected %q to exist after write, got %v, %v", p, ok, err)
		}
	}
	read, err := l.Read(ctx, abs)
	if err != nil {
		t.Fatalf("Read by absolute path failed: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(2)}, read.Value()); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
	if ok, _ := l.Exists(ctx, filepath.Join("etl", "load")); ok {
		t.Error("expected a directory not to count as a result")
	}
}

func TestLocal_MissingParam(t *testing.T) {
	l := tempLocal(t, WithLocation("{flow}/{task}.bin"))
	_, err := l.Write(context.Background(), 1, map[string]any{"flow": "etl"})
	if !errors.Is(err, errors.ErrCodeTemplateRender) {
		t.Errorf("expected TEMPLATE_RENDER, got %v", err)
	}
}

func TestLocal_ReadErrors(t *testing.T) {
	ctx := context.Background()
	l := tempLocal(t)
	if _, err := l.Read(ctx, "missing.bin"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(l.Dir(), "garbage.bin"), []byte{0xff, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Read(ctx, "garbage.bin"); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("expected DECODE, got %v", err)
	}
	if _, err := l.Read(ctx, "../outside.bin"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for escaping path, got %v", err)
	}
	if err := os.Mkdir(filepath.Join(l.Dir(), "sub"), 0o750); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Read(ctx, "sub"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND for a directory, got %v", err)
	}
}

func TestLocal_Directories(t *testing.T) {
	home := t.TempDir()
	results := filepath.Join(home, "results")

	t.Run("default under home", func(t *testing.T) {
		l, err := NewLocal(WithHomeDir(home))
		if err != nil {
			t.Fatalf("NewLocal failed: %v", err)
		}
		if l.Dir() != results {
			t.Errorf("expected %q, got %q", results, l.Dir())
		}
	})

	t.Run("home dir redirected", func(t *testing.T) {
		l, err := NewLocal(WithHomeDir(home), WithDir(home+string(filepath.Separator)))
		if err != nil {
			t.Fatalf("NewLocal failed: %v", err)
		}
		if l.Dir() != results {
			t.Errorf("expected %q, got %q", results, l.Dir())
		}
	})

	t.Run("other dir kept and created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		l, err := NewLocal(WithHomeDir(home), WithDir(dir))
		if err != nil {
			t.Fatalf("NewLocal failed: %v", err)
		}
		if l.Dir() != dir {
			t.Errorf("expected %q, got %q", dir, l.Dir())
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected dir to be created: %v", err)
		}
	})

	t.Run("validation disabled", func(t *testing.T) {
		l, err := NewLocal(WithDir("relative/results"), WithValidateDir(false))
		if err != nil {
			t.Fatalf("NewLocal failed: %v", err)
		}
		if l.Dir() != "relative/results" {
			t.Errorf("expected dir kept verbatim, got %q", l.Dir())
		}
		if _, err := os.Stat("relative"); !os.IsNotExist(err) {
			t.Error("expected dir not to be created")
		}
	})
}

func TestLocal_LogsReadAndWrite(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "", &buf)
	l, err := NewLocal(WithDir(t.TempDir()), WithLogger(log), WithLocation("x.bin"))
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	ctx := context.Background()
	if _, err := l.Write(ctx, 1, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Read(ctx, "x.bin"); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{
		"starting to write result", "finished writing result",
		"starting to read result", "finished reading result",
		`"component":"result.local"`,
	} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected log output to contain %q", msg)
		}
	}
}

func TestLocal_RejectsMalformedTemplate(t *testing.T) {
	_, err := NewLocal(WithDir(t.TempDir()), WithLocation("{flow/out.bin"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "location: malformed template") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLocal_RecordsSpansAndMetrics(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	l := tempLocal(t,
		WithLocation("{n}.bin"),
		WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))),
		WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))),
	)
	ctx := context.Background()
	if _, err := l.Write(ctx, "payload", map[string]any{"n": 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Read(ctx, "1.bin"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Read(ctx, "missing.bin"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	var names []string
	for _, span := range sr.Ended() {
		names = append(names, span.Name())
	}
	want := []string{observability.SpanWrite, observability.SpanRead, observability.SpanRead}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("span names mismatch (-want +got):\n%s", diff)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	if totals[observability.MetricOperationTotal] != 3 {
		t.Errorf("expected 3 operations, got %d", totals[observability.MetricOperationTotal])
	}
	if totals[observability.MetricErrorTotal] != 1 {
		t.Errorf("expected 1 failed operation, got %d", totals[observability.MetricErrorTotal])
	}
	if totals[observability.MetricBytesTotal] == 0 {
		t.Error("expected payload bytes to be counted")
	}
}

func TestConstructors_ConcurrentDefaultLogger(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = NewSecret(nil)
		}()
		go func() {
			defer wg.Done()
			if _, err := NewLocal(WithDir(dir)); err != nil {
				t.Errorf("NewLocal failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
