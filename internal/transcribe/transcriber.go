package transcribe

import "context"

// Segment is one time-bounded span of recognized speech. Start and End are
// offsets in seconds from the beginning of the media; Text may carry leading
// or trailing whitespace, which serializers trim before emission.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Result aggregates a whole transcription run. It is produced by a
// Transcriber and consumed immediately by the formatting stage; it is never
// persisted.
type Result struct {
	// Language is the detected language code (e.g. "es").
	Language string
	// Text is the full transcript; concatenation semantics are owned by the model.
	Text string
	// Segments are the utterance spans in chronological order, possibly empty.
	Segments []Segment
}

// Transcriber is a loaded speech-to-text model. Implementations must be safe
// for concurrent use: one handle serves every request for its model
// identifier for the lifetime of the process.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (Result, error)
}
