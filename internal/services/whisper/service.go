package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"transcriptor/internal/logging"
	"transcriptor/internal/transcribe"
)

// CommandRunner executes an external command. Tests inject one to observe
// arguments and fabricate output files.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Engine is a Transcriber backed by the Whisper CLI, bound to one model.
type Engine struct {
	cfg    Config
	model  transcribe.Model
	logger *slog.Logger
	runner CommandRunner
}

// NewEngine builds an Engine for the given catalog model.
func NewEngine(cfg Config, model transcribe.Model, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		model:  model,
		logger: logging.NewComponentLogger(logger, "whisper"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Engine) WithCommandRunner(runner CommandRunner) *Engine {
	e.runner = runner
	return e
}

// Model returns the bound model identifier.
func (e *Engine) Model() string {
	return e.model.ID
}

// NewLoader adapts the engine constructor to the registry's Loader contract.
// Binary availability is verified here so a missing tool surfaces at load
// time instead of mid-inference.
func NewLoader(cfg Config, logger *slog.Logger) transcribe.Loader {
	return func(ctx context.Context, model transcribe.Model) (transcribe.Transcriber, error) {
		if _, err := exec.LookPath(cfg.binary()); err != nil {
			return nil, fmt.Errorf("locate whisper binary: %w", err)
		}
		return NewEngine(cfg, model, logger), nil
	}
}

// Transcribe runs the Whisper CLI against mediaPath and parses its JSON
// output. The tool's working files live in a private temporary directory that
// is removed before returning.
func (e *Engine) Transcribe(ctx context.Context, mediaPath string) (transcribe.Result, error) {
	var result transcribe.Result

	if strings.TrimSpace(mediaPath) == "" {
		return result, fmt.Errorf("transcribe: media path required")
	}

	outputDir, err := os.MkdirTemp("", "whisper-out-")
	if err != nil {
		return result, fmt.Errorf("transcribe: create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	if e.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	start := time.Now()
	args := e.buildArgs(mediaPath, outputDir)
	if err := e.run(ctx, e.cfg.binary(), args...); err != nil {
		return result, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	result, err = loadResult(jsonPath)
	if err != nil {
		return transcribe.Result{}, err
	}

	e.logger.Info("transcription complete",
		logging.String(logging.FieldModel, e.model.ID),
		logging.String("language", result.Language),
		logging.Int("segments", len(result.Segments)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (e *Engine) buildArgs(mediaPath, outputDir string) []string {
	args := []string{
		mediaPath,
		"--model", e.model.ID,
		"--task", "transcribe",
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if lang := strings.TrimSpace(e.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

func (e *Engine) run(ctx context.Context, name string, args ...string) error {
	if e.runner != nil {
		return e.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// whisperSegment mirrors one entry of the CLI's segments array.
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// whisperPayload is the JSON document the CLI writes alongside the media.
type whisperPayload struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []whisperSegment `json:"segments"`
}

func loadResult(jsonPath string) (transcribe.Result, error) {
	var result transcribe.Result

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return result, fmt.Errorf("read whisper output: %w", err)
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return result, fmt.Errorf("parse whisper json: %w", err)
	}

	result.Language = payload.Language
	result.Text = payload.Text
	if len(payload.Segments) > 0 {
		result.Segments = make([]transcribe.Segment, 0, len(payload.Segments))
		for _, segment := range payload.Segments {
			result.Segments = append(result.Segments, transcribe.Segment{
				Start: segment.Start,
				End:   segment.End,
				Text:  segment.Text,
			})
		}
	}
	return result, nil
}
