package whisper

// Config carries the external-tool settings for the Whisper CLI.
type Config struct {
	// Binary is the whisper executable, resolved through PATH when relative.
	Binary string
	// Language is an optional ISO 639-1 hint. Empty means auto-detect.
	Language string
	// TimeoutSeconds bounds a single inference run. Zero disables the bound.
	TimeoutSeconds int
}

// DefaultBinary is the executable name used when Config.Binary is empty.
const DefaultBinary = "whisper"

func (c Config) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}
