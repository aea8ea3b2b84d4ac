// Package artifact packages finished transcripts into named, typed downloads.
package artifact

import (
	"fmt"
	"time"

	"transcriptor/internal/services"
)

// Format selects the shape of the packaged transcript.
type Format string

const (
	// Text packages the raw transcript as plain text.
	Text Format = "text"
	// Subtitle packages the transcript as SRT subtitles.
	Subtitle Format = "subtitle"
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case Text, Subtitle:
		return Format(value), nil
	default:
		return "", services.Wrap(services.ErrMalformedInput, "packaging", "parse format", fmt.Sprintf("unknown format %q", value), nil)
	}
}

// Artifact is a finished transcript ready to hand to the user.
type Artifact struct {
	FileName string
	MimeType string
	Content  []byte
}

const timestampLayout = "20060102_150405"

// Package wraps content in a download named for its format and creation time.
// Two artifacts packaged in the same second collide on purpose: the name
// identifies a moment, not a request.
func Package(format Format, content string, now time.Time) (Artifact, error) {
	stamp := now.Format(timestampLayout)
	switch format {
	case Text:
		return Artifact{
			FileName: fmt.Sprintf("transcripcion_%s.txt", stamp),
			MimeType: "text/plain",
			Content:  []byte(content),
		}, nil
	case Subtitle:
		return Artifact{
			FileName: fmt.Sprintf("subtitulos_%s.srt", stamp),
			MimeType: "application/x-subrip",
			Content:  []byte(content),
		}, nil
	default:
		return Artifact{}, services.Wrap(services.ErrMalformedInput, "packaging", "package artifact", fmt.Sprintf("unknown format %q", format), nil)
	}
}
