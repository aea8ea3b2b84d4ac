package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"transcriptor/internal/artifact"
	"transcriptor/internal/config"
	"transcriptor/internal/history"
	"transcriptor/internal/language"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/services"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var modelFlag string
	var formatFlag string
	var languageFlag string
	var outputDirFlag string

	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Transcribe an audio or video file",
		Long: `Transcribe an audio or video file with the Whisper CLI.

The transcript is written to the output directory either as plain text
(--format text) or as SRT subtitles (--format subtitle).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			format, err := artifact.ParseFormat(strings.TrimSpace(formatFlag))
			if err != nil {
				return fmt.Errorf("--format must be %q or %q", artifact.Text, artifact.Subtitle)
			}

			model := strings.TrimSpace(modelFlag)
			if model == "" {
				model = cfg.Whisper.Model
			}

			mediaPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			media, err := os.ReadFile(mediaPath)
			if err != nil {
				return fmt.Errorf("read media file: %w", err)
			}

			whisperCfg := whisper.Config{
				Binary:         cfg.Whisper.Binary,
				Language:       strings.TrimSpace(languageFlag),
				TimeoutSeconds: cfg.Whisper.TimeoutSeconds,
			}
			if whisperCfg.Language == "" {
				whisperCfg.Language = cfg.Whisper.Language
			}

			registry := transcribe.NewRegistry(whisper.NewLoader(whisperCfg, logger), logger)

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			result, err := pipeline.New(cfg, registry, store, logger).Run(cmd.Context(), pipeline.Request{
				Media:            media,
				OriginalFileName: filepath.Base(mediaPath),
				Model:            model,
				Format:           format,
			})
			if err != nil {
				return fmt.Errorf("%s", services.UserMessage(err))
			}

			outputDir := strings.TrimSpace(outputDirFlag)
			if outputDir == "" {
				outputDir = cfg.Paths.OutputDir
			} else if outputDir, err = config.ExpandPath(outputDir); err != nil {
				return err
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			target := filepath.Join(outputDir, result.Artifact.FileName)
			if err := os.WriteFile(target, result.Artifact.Content, 0o644); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", target)
			fmt.Fprintf(out, "Detected language: %s\n", language.Display(result.Language))
			if format == artifact.Subtitle {
				fmt.Fprintf(out, "Cues: %d covering %s\n", result.SegmentCount, formatMediaDuration(result.MediaDuration))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Whisper model to use (see `transcriptor models`)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(artifact.Text), "Output format: text or subtitle")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language hint passed to Whisper (default: autodetect)")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for the transcript artifact")

	return cmd
}

func formatMediaDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
