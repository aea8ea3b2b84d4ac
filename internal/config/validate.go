package config

import (
	"fmt"
	"strings"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks configuration invariants that normalization cannot repair.
func (c *Config) Validate() error {
	var problems []string

	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		problems = append(problems, fmt.Sprintf("logging.format %q (expected console or json)", c.Logging.Format))
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		problems = append(problems, fmt.Sprintf("logging.level %q (expected debug, info, warn, or error)", c.Logging.Level))
	}
	if c.Paths.StagingDir == c.Paths.OutputDir {
		problems = append(problems, "paths.staging_dir and paths.output_dir must differ")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
