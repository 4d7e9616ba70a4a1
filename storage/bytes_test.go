package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/kbukum/resultkit/errors"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, fmt.Errorf("mock read error") }

// mockStorage implements Storage for testing.
type mockStorage struct {
	data   map[string][]byte
	failOn string // method name to fail on
}

func newMockStorage() *mockStorage {
	return &mockStorage{data: make(map[string][]byte)}
}

func (m *mockStorage) Upload(_ context.Context, path string, reader io.Reader) error {
	if m.failOn == "upload" {
		return fmt.Errorf("mock upload error")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.data[path] = data
	return nil
}

func (m *mockStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	if m.failOn == "download" {
		return nil, fmt.Errorf("mock download error")
	}
	if m.failOn == "read" {
		return io.NopCloser(failingReader{}), nil
	}
	data, ok := m.data[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockStorage) Exists(_ context.Context, path string) (bool, error) {
	if m.failOn == "exists" {
		return false, fmt.Errorf("mock exists error")
	}
	_, ok := m.data[path]
	return ok, nil
}

func TestByteClient_RoundTrip(t *testing.T) {
	ms := newMockStorage()
	c := NewByteClient(ms)
	ctx := context.Background()

	if err := c.Upload(ctx, "a/b.bin", []byte("payload")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if string(ms.data["a/b.bin"]) != "payload" {
		t.Errorf("expected payload stored, got %q", ms.data["a/b.bin"])
	}

	got, err := c.Download(ctx, "a/b.bin")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("expected 'payload', got %q", got)
	}

	ok, err := c.Exists(ctx, "a/b.bin")
	if err != nil || !ok {
		t.Errorf("expected Exists=true, got %v, %v", ok, err)
	}
}

func TestByteClient_PropagatesErrors(t *testing.T) {
	for _, method := range []string{"upload", "download", "exists"} {
		t.Run(method, func(t *testing.T) {
			ms := newMockStorage()
			ms.failOn = method
			c := NewByteClient(ms)
			ctx := context.Background()

			var err error
			switch method {
			case "upload":
				err = c.Upload(ctx, "x", []byte("y"))
			case "download":
				_, err = c.Download(ctx, "x")
			case "exists":
				_, err = c.Exists(ctx, "x")
			}
			if err == nil {
				t.Fatalf("expected %s error", method)
			}
		})
	}
}

func TestByteClient_ReadFailureIsIO(t *testing.T) {
	ms := newMockStorage()
	ms.failOn = "read"
	c := NewByteClient(ms)

	_, err := c.Download(context.Background(), "x")
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("expected IO error, got %v", err)
	}
	if !errors.IsRetryable(err) {
		t.Error("expected read failure to be retryable")
	}
}
