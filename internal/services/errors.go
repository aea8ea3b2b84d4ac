package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput marks requests that arrived without media bytes.
	ErrMissingInput = errors.New("missing input")
	// ErrMalformedInput marks requests whose file name carries no usable extension.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownModel marks model identifiers outside the fixed catalog.
	ErrUnknownModel = errors.New("unknown model")
	// ErrModelLoad marks models that could not be initialized.
	ErrModelLoad = errors.New("model load failure")
	// ErrStaging marks temporary storage I/O failures.
	ErrStaging = errors.New("staging error")
	// ErrTranscription marks inference failures on staged media.
	ErrTranscription = errors.New("transcription error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTranscription
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserMessage renders the single descriptive message the caller shows the
// user. Partial results are never exposed, so this is the whole surface of a
// failed request.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrMissingInput):
		return "No media file was supplied. Select an audio or video file and try again."
	case errors.Is(err, ErrMalformedInput):
		return "The file name has no extension, so the media type cannot be determined."
	case errors.Is(err, ErrUnknownModel):
		return "The requested model is not one of the supported Whisper models."
	case errors.Is(err, ErrModelLoad):
		return "The Whisper model could not be loaded. Check that whisper is installed."
	case errors.Is(err, ErrStaging):
		return "The media could not be written to temporary storage."
	case errors.Is(err, ErrTranscription):
		return "Transcription failed. The media may be corrupt or use an unsupported codec."
	default:
		return err.Error()
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
