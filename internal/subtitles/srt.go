package subtitles

import (
	"fmt"
	"strconv"
	"strings"

	"transcriptor/internal/transcribe"
)

// RenderSRT serializes segments into a complete SRT document. An empty
// segment sequence yields an empty string. The function is pure: no side
// effects, byte-identical output for identical input.
func RenderSRT(segments []transcribe.Segment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, segment := range segments {
		start, err := FormatTimestamp(segment.Start)
		if err != nil {
			return "", fmt.Errorf("segment %d start: %w", i+1, err)
		}
		end, err := FormatTimestamp(segment.End)
		if err != nil {
			return "", fmt.Errorf("segment %d end: %w", i+1, err)
		}

		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(start)
		b.WriteString(" --> ")
		b.WriteString(end)
		b.WriteByte('\n')
		b.WriteString(strings.TrimSpace(segment.Text))
		b.WriteByte('\n')
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// CueCount reports the number of cue blocks in an SRT document.
func CueCount(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}
	count := 0
	for _, block := range strings.Split(trimmed, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}
