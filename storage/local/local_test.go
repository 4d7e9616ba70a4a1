package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/resultkit/errors"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}
	return s
}

func TestNewStorage_CreatesBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "results")
	s, err := NewStorage(base)
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		t.Fatalf("expected base dir to be created, stat err = %v", err)
	}
	if !filepath.IsAbs(s.BasePath()) {
		t.Errorf("expected absolute base path, got %q", s.BasePath())
	}
}

func TestNewStorage_WithoutCreate(t *testing.T) {
	s, err := NewStorage("relative/root", WithoutCreate())
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}
	if s.BasePath() != "relative/root" {
		t.Errorf("expected base path kept verbatim, got %q", s.BasePath())
	}
	if _, err := os.Stat("relative/root"); !os.IsNotExist(err) {
		t.Errorf("expected base not to be created, stat err = %v", err)
	}
}

func TestUploadDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.Upload(ctx, filepath.Join("mydir", "mysubdir", "42.txt"), strings.NewReader("so-much-data")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	rc, err := s.Download(ctx, filepath.Join("mydir", "mysubdir", "42.txt"))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "so-much-data" {
		t.Errorf("expected 'so-much-data', got %q", data)
	}

	entries, _ := os.ReadDir(filepath.Join(s.BasePath(), "mydir", "mysubdir"))
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestUpload_Overwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	_ = s.Upload(ctx, "a.txt", strings.NewReader("first"))
	if err := s.Upload(ctx, "a.txt", strings.NewReader("second")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(s.BasePath(), "a.txt"))
	if string(got) != "second" {
		t.Errorf("expected last write to win, got %q", got)
	}
}

func TestUpload_ConcurrentOverlappingDirs(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := filepath.Join("shared", "deep", fmt.Sprintf("%d.txt", i))
			errs <- s.Upload(ctx, p, strings.NewReader("x"))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Upload() error = %v", err)
		}
	}
}

func TestDownload_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Download(context.Background(), "missing.txt")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDownload_DirectoryIsNotFound(t *testing.T) {
	s := newTestStorage(t)
	if err := os.MkdirAll(filepath.Join(s.BasePath(), "sub"), 0o750); err != nil {
		t.Fatal(err)
	}
	rc, err := s.Download(context.Background(), "sub")
	if err == nil {
		_ = rc.Close()
		t.Fatal("expected error downloading a directory")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestExists_RelativeAndAbsolute(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	rel := filepath.Join("mydir", "44.txt")
	abs := filepath.Join(s.BasePath(), rel)

	for _, p := range []string{rel, abs} {
		ok, err := s.Exists(ctx, p)
		if err != nil || ok {
			t.Fatalf("expected %q not to exist yet, got %v, %v", p, ok, err)
		}
	}
	_ = s.Upload(ctx, rel, strings.NewReader("x"))
	for _, p := range []string{rel, abs} {
		ok, err := s.Exists(ctx, p)
		if err != nil || !ok {
			t.Errorf("expected %q to exist, got %v, %v", p, ok, err)
		}
	}
}

func TestExists_DirectoryIsNotAResult(t *testing.T) {
	s := newTestStorage(t)
	_ = os.MkdirAll(filepath.Join(s.BasePath(), "dir"), 0o750)
	ok, err := s.Exists(context.Background(), "dir")
	if err != nil || ok {
		t.Errorf("expected directory not to count as existing result, got %v, %v", ok, err)
	}
}

func TestResolve(t *testing.T) {
	s := newTestStorage(t)
	base := s.BasePath()

	got, err := s.Resolve("x/y.txt")
	if err != nil || got != filepath.Join(base, "x", "y.txt") {
		t.Errorf("relative: got %q, %v", got, err)
	}

	inside := filepath.Join(base, "z.txt")
	if got, _ := s.Resolve(inside); got != inside {
		t.Errorf("absolute inside root should be kept, got %q", got)
	}

	outside := filepath.Join(string(filepath.Separator), "elsewhere", "z.txt")
	if got, _ := s.Resolve(outside); got != filepath.Join(base, "elsewhere", "z.txt") {
		t.Errorf("absolute outside root should be joined under root, got %q", got)
	}

	if _, err := s.Resolve(filepath.Join("..", "escape.txt")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for escaping path, got %v", err)
	}
}
