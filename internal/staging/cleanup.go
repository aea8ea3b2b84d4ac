package staging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"transcriptor/internal/logging"
)

// CleanResult contains the outcome of a stale staged-media cleanup run.
type CleanResult struct {
	// Skipped is true when another cleaner held the maintenance lock.
	Skipped bool
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a staged file path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

const cleanupLockName = ".cleanup.lock"

// CleanStale removes staged media files older than maxAge. Normal operation
// deletes staged files when a request finishes; this catches the leftovers of
// crashed or killed processes. A non-blocking file lock keeps concurrent
// cleaners from racing over the same directory.
func CleanStale(ctx context.Context, stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanResult {
	result := CleanResult{}
	logger = logging.NewComponentLogger(logger, "staging")

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	lock := flock.New(filepath.Join(stagingDir, cleanupLockName))
	locked, err := lock.TryLock()
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Error: err})
		return result
	}
	if !locked {
		result.Skipped = true
		logger.Debug("cleanup already running elsewhere", logging.String("path", stagingDir))
		return result
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return result
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), stagedPrefix) {
			continue
		}

		filePath := filepath.Join(stagingDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: filePath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filePath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: filePath, Error: err})
			logger.Warn("failed to remove stale staged media",
				logging.String("path", filePath),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, filePath)
		logger.Info("removed stale staged media",
			logging.String("path", filePath),
			logging.Duration("age", time.Since(info.ModTime())),
		)
	}

	return result
}
