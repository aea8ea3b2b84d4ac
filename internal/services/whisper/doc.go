// Package whisper invokes the OpenAI Whisper CLI as the inference
// collaborator.
//
// Each Engine is bound to one catalog model. Transcribe runs the external
// tool against a staged media file with JSON output and parses the emitted
// payload into the transcribe.Result contract. The command runner is
// injectable so tests never spawn the real tool.
package whisper
