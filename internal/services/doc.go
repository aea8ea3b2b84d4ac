// Package services defines the shared error taxonomy and context plumbing
// used by the transcription pipeline and its collaborators.
//
// Errors are classified with sentinel markers so callers can map any failure
// to a single user-facing message without inspecting error strings. Wrap
// attaches stage and operation context exactly once at the point of failure.
package services
