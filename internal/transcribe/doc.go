// Package transcribe defines the speech-to-text contract and the model
// registry.
//
// The inference engine is a black box behind the Transcriber interface: given
// a path to staged media it returns the detected language, the full text, and
// the ordered utterance segments. The Registry resolves one of the five fixed
// Whisper model identifiers to a process-lifetime Transcriber, loading each
// model at most once.
package transcribe
