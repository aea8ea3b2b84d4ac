// Package subtitles converts transcript segments into SRT subtitle payloads.
//
// Rendering is deterministic: the same segment sequence always produces a
// byte-identical SRT document. Cue indices are 1-based and contiguous in
// segment order regardless of timing gaps or overlaps.
package subtitles
