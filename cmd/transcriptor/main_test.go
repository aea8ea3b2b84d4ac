package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestModelsCommand(t *testing.T) {
	output, err := runCommand(t, "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	for _, want := range []string{"tiny", "base", "small", "medium", "large", "1550M"} {
		if !strings.Contains(output, want) {
			t.Errorf("models output missing %q:\n%s", want, output)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Errorf("output does not mention target: %s", output)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite should fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("init with --overwrite: %v", err)
	}
}

func TestTranscribeRejectsUnknownFormat(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	_, err := runCommand(t, "transcribe", "clip.mp3", "--format", "pdf", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "--format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFormatMediaDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m30s"},
		{61 * time.Minute, "1h01m"},
	}
	for _, tc := range tests {
		if got := formatMediaDuration(tc.d); got != tc.want {
			t.Errorf("formatMediaDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
