package config

const (
	defaultStagingDir         = "~/.local/share/transcriptor/staging"
	defaultOutputDir          = "~/transcripts"
	defaultLogDir             = "~/.local/share/transcriptor/logs"
	defaultWhisperBinary      = "whisper"
	defaultWhisperModel       = "base"
	defaultWhisperTimeoutSecs = 3600
	defaultStagingMaxAgeHours = 24
	defaultStagingMinFreeMiB  = 256
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Whisper: Whisper{
			Binary:         defaultWhisperBinary,
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeoutSecs,
		},
		Staging: Staging{
			MaxAgeHours: defaultStagingMaxAgeHours,
			MinFreeMiB:  defaultStagingMinFreeMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
