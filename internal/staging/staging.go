package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"transcriptor/internal/services"
)

// stagedPrefix names every staged file so maintenance can tell staged media
// apart from foreign files in a shared directory.
const stagedPrefix = "media-"

// File is one staged media artifact.
type File struct {
	Path string

	removeOnce sync.Once
	removeErr  error
}

// Extension extracts the extension (with leading dot) from an uploaded file
// name. A name without an extractable extension is malformed input: without
// it the inference tool cannot identify the container format.
func Extension(originalName string) (string, error) {
	name := strings.TrimSpace(originalName)
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return "", services.Wrap(services.ErrMalformedInput, "staging", "derive extension", fmt.Sprintf("file name %q", name), nil)
	}
	return strings.ToLower(ext), nil
}

// Stage writes media to a fresh temporary file in dir, preserving the
// original upload's extension. The caller owns the returned File and must
// call Remove when done with it.
func Stage(dir, originalName string, media []byte) (*File, error) {
	ext, err := Extension(originalName)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, stagedPrefix+"*"+ext)
	if err != nil {
		return nil, services.Wrap(services.ErrStaging, "staging", "create temp file", "", err)
	}

	if _, err := tmp.Write(media); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, services.Wrap(services.ErrStaging, "staging", "write media", "", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, services.Wrap(services.ErrStaging, "staging", "close temp file", "", err)
	}

	return &File{Path: tmp.Name()}, nil
}

// Remove deletes the staged file. It runs the delete exactly once no matter
// how many exit paths call it; later calls return the first outcome.
func (f *File) Remove() error {
	f.removeOnce.Do(func() {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			f.removeErr = err
		}
	})
	return f.removeErr
}
