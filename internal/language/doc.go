// Package language maps Whisper language codes to display names for CLI and
// log output.
package language
