package config

import "strings"

func (c *Config) normalize() error {
	var err error

	if c.Paths.StagingDir = strings.TrimSpace(c.Paths.StagingDir); c.Paths.StagingDir == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir); c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir); c.Paths.LogDir == "" {
		c.Paths.LogDir = defaultLogDir
	}

	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	if c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary); c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))
	if c.Whisper.TimeoutSeconds <= 0 {
		c.Whisper.TimeoutSeconds = defaultWhisperTimeoutSecs
	}

	if c.Staging.MaxAgeHours <= 0 {
		c.Staging.MaxAgeHours = defaultStagingMaxAgeHours
	}
	if c.Staging.MinFreeMiB < 0 {
		c.Staging.MinFreeMiB = 0
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}
