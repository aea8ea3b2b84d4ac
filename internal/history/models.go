package history

import "time"

// Status mirrors the lifecycle of a transcription request.
type Status string

const (
	StatusPending      Status = "pending"
	StatusStaging      Status = "staging"
	StatusLoading      Status = "loading"
	StatusTranscribing Status = "transcribing"
	StatusFormatting   Status = "formatting"
	StatusPackaged     Status = "packaged"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusStaging,
	StatusLoading,
	StatusTranscribing,
	StatusFormatting,
	StatusPackaged,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether status names a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether a request in this status is done moving.
func (s Status) Terminal() bool {
	return s == StatusPackaged || s == StatusFailed
}

// Request is one transcription request persisted in SQLite.
type Request struct {
	ID               int64
	RequestID        string
	SourceName       string
	Model            string
	Format           string
	Status           Status
	ErrorMessage     string
	DetectedLanguage string
	ArtifactName     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Summary aggregates request counts per key lifecycle states.
type Summary struct {
	Total    int
	Packaged int
	Failed   int
}
