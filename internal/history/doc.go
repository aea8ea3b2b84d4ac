// Package history persists transcription request records in SQLite so past
// runs can be listed and audited after the fact.
package history
