// Package pipeline runs transcription requests from uploaded media to a
// packaged transcript artifact.
package pipeline
