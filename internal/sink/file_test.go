package sink

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jittakal/logdiag/internal/config/dto"
	apperrors "github.com/jittakal/logdiag/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileWriterPut(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFileWriter(FileConfig{BasePath: dir}, discardLogger(), nil)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	data := []byte("TIMELINE COMPARISON REPORT\n")
	n, err := w.Put(context.Background(), "log_analysis_timeline.txt", data)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("Put() = %d bytes, want %d", n, len(data))
	}

	got, err := os.ReadFile(filepath.Join(dir, "log_analysis_timeline.txt"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("artifact content = %q, want %q", got, data)
	}
}

func TestFileWriterCreatesBasePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	w, err := NewFileWriter(FileConfig{BasePath: dir}, discardLogger(), nil)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("base path was not created: %v", err)
	}
}

func TestFileWriterPutError(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFileWriter(FileConfig{BasePath: dir}, discardLogger(), nil)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	// A name pointing into a missing subdirectory fails the write.
	_, err = w.Put(context.Background(), filepath.Join("missing", "report.txt"), []byte("x"))
	if err == nil {
		t.Fatal("Put() into missing subdirectory should fail")
	}
	if !apperrors.IsRetryable(err) {
		t.Errorf("put failure should be retryable, got %v", err)
	}
}

func TestFileWriterCancelledContext(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFileWriter(FileConfig{BasePath: dir}, discardLogger(), nil)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Put(ctx, "report.txt", []byte("x")); err == nil {
		t.Error("Put() with cancelled context should fail")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "report.txt")); statErr == nil {
		t.Error("cancelled Put() must not write the artifact")
	}
}

func TestNewWriterFileBackend(t *testing.T) {
	cfg := dto.ReportsConfig{
		Backend: "file",
		File:    dto.FileConfig{BasePath: t.TempDir()},
	}

	w, err := NewWriter(context.Background(), cfg, discardLogger(), nil)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	defer w.Close()

	if _, ok := w.(*FileWriter); !ok {
		t.Errorf("NewWriter() = %T, want *FileWriter", w)
	}
}

func TestNewWriterUnknownBackend(t *testing.T) {
	cfg := dto.ReportsConfig{Backend: "tape"}

	if _, err := NewWriter(context.Background(), cfg, discardLogger(), nil); err == nil {
		t.Error("NewWriter() with unknown backend should fail")
	}
}
