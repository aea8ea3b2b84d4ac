// Command transcriptor is the CLI for the Whisper transcription pipeline.
package main
