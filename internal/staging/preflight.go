package staging

import (
	"fmt"

	"golang.org/x/sys/unix"

	"transcriptor/internal/services"
)

// Preflight verifies that dir can hold a staged file of needBytes while
// leaving minFreeBytes headroom on the volume. It fails with a staging error
// when the directory is not writable or space is short, so the pipeline
// rejects a request before any media is written.
func Preflight(dir string, needBytes, minFreeBytes int64) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return services.Wrap(services.ErrStaging, "staging", "access staging dir", dir, err)
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return services.Wrap(services.ErrStaging, "staging", "statfs staging dir", dir, err)
	}

	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < needBytes+minFreeBytes {
		detail := fmt.Sprintf("%d bytes free, need %d plus %d headroom", free, needBytes, minFreeBytes)
		return services.Wrap(services.ErrStaging, "staging", "free space", detail, nil)
	}
	return nil
}
