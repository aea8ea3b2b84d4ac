package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"transcriptor/internal/logging"
)

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   "} {
		result := CleanStale(context.Background(), dir, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestCleanStaleRemovesOldStagedFiles(t *testing.T) {
	tmpDir := t.TempDir()

	oldFile := filepath.Join(tmpDir, "media-123.mp3")
	if err := os.WriteFile(oldFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("create old file: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	recentFile := filepath.Join(tmpDir, "media-456.wav")
	if err := os.WriteFile(recentFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("create recent file: %v", err)
	}

	result := CleanStale(context.Background(), tmpDir, time.Hour, logging.NewNop())

	if result.Skipped {
		t.Fatal("cleanup unexpectedly skipped")
	}
	if len(result.Removed) != 1 || result.Removed[0] != oldFile {
		t.Fatalf("Removed = %v, want [%s]", result.Removed, oldFile)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("old staged file should be gone")
	}
	if _, err := os.Stat(recentFile); err != nil {
		t.Error("recent staged file should survive")
	}
}

func TestCleanStaleIgnoresForeignFiles(t *testing.T) {
	tmpDir := t.TempDir()

	foreign := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}
	oldTime := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(foreign, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	subdir := filepath.Join(tmpDir, "media-looks-like-dir")
	if err := os.Mkdir(subdir, 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.Chtimes(subdir, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	result := CleanStale(context.Background(), tmpDir, time.Hour, logging.NewNop())

	if len(result.Removed) != 0 {
		t.Errorf("expected no removals, got %v", result.Removed)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Error("foreign file should survive")
	}
	if _, err := os.Stat(subdir); err != nil {
		t.Error("directory should survive")
	}
}

func TestCleanStaleHonorsCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	stale := filepath.Join(tmpDir, "media-789.ogg")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := CleanStale(ctx, tmpDir, time.Hour, logging.NewNop())
	if len(result.Removed) != 0 {
		t.Errorf("cancelled cleanup should remove nothing, got %v", result.Removed)
	}
}
