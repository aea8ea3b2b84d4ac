package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"transcriptor/internal/artifact"
	"transcriptor/internal/config"
	"transcriptor/internal/history"
	"transcriptor/internal/logging"
	"transcriptor/internal/services"
	"transcriptor/internal/transcribe"
)

type fakeTranscriber struct {
	result  transcribe.Result
	err     error
	gotPath string
	onCall  func()
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, mediaPath string) (transcribe.Result, error) {
	f.gotPath = mediaPath
	if f.onCall != nil {
		f.onCall()
	}
	if err := ctx.Err(); err != nil {
		return transcribe.Result{}, err
	}
	return f.result, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.StagingDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Staging.MinFreeMiB = 0
	return &cfg
}

func newTestPipeline(t *testing.T, fake *fakeTranscriber) (*Pipeline, *config.Config) {
	t.Helper()
	cfg := testConfig(t)
	registry := transcribe.NewRegistry(func(ctx context.Context, model transcribe.Model) (transcribe.Transcriber, error) {
		return fake, nil
	}, logging.NewNop())
	fixed := time.Date(2024, 3, 15, 9, 5, 7, 0, time.UTC)
	p := New(cfg, registry, nil, logging.NewNop()).WithClock(func() time.Time { return fixed })
	return p, cfg
}

func stagingEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestRunTextRequest(t *testing.T) {
	fake := &fakeTranscriber{result: transcribe.Result{
		Language: "es",
		Text:     " hola a todos ",
		Segments: []transcribe.Segment{
			{Start: 0, End: 2.5, Text: " hola "},
			{Start: 2.5, End: 4.0, Text: " a todos "},
		},
	}}
	p, cfg := newTestPipeline(t, fake)

	result, err := p.Run(context.Background(), Request{
		Media:            []byte("media bytes"),
		OriginalFileName: "charla.mp3",
		Model:            "base",
		Format:           artifact.Text,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Artifact.FileName != "transcripcion_20240315_090507.txt" {
		t.Errorf("FileName = %q", result.Artifact.FileName)
	}
	if result.Artifact.MimeType != "text/plain" {
		t.Errorf("MimeType = %q", result.Artifact.MimeType)
	}
	// The text format carries the transcript verbatim, untrimmed.
	if string(result.Artifact.Content) != " hola a todos " {
		t.Errorf("Content = %q", result.Artifact.Content)
	}
	if result.Language != "es" || result.SegmentCount != 2 {
		t.Errorf("Language = %q, SegmentCount = %d", result.Language, result.SegmentCount)
	}
	if result.MediaDuration != 4*time.Second {
		t.Errorf("MediaDuration = %v", result.MediaDuration)
	}

	if !strings.HasPrefix(filepath.Base(fake.gotPath), "media-") || !strings.HasSuffix(fake.gotPath, ".mp3") {
		t.Errorf("transcriber saw unexpected path %q", fake.gotPath)
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("staged media left behind: %v", names)
	}
}

func TestRunSubtitleRequest(t *testing.T) {
	fake := &fakeTranscriber{result: transcribe.Result{
		Language: "en",
		Text:     "hello",
		Segments: []transcribe.Segment{{Start: 0, End: 1.5, Text: "  hello  "}},
	}}
	p, _ := newTestPipeline(t, fake)

	result, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "clip.mp4",
		Model:            "base",
		Format:           artifact.Subtitle,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:01,500\nhello\n\n"
	if string(result.Artifact.Content) != want {
		t.Errorf("Content = %q, want %q", result.Artifact.Content, want)
	}
	if result.Artifact.FileName != "subtitulos_20240315_090507.srt" {
		t.Errorf("FileName = %q", result.Artifact.FileName)
	}
	if result.Artifact.MimeType != "application/x-subrip" {
		t.Errorf("MimeType = %q", result.Artifact.MimeType)
	}
}

func TestRunSubtitleRequestNoSegments(t *testing.T) {
	fake := &fakeTranscriber{result: transcribe.Result{Language: "en", Text: "silence"}}
	p, _ := newTestPipeline(t, fake)

	result, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "quiet.wav",
		Model:            "base",
		Format:           artifact.Subtitle,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Artifact.Content) != 0 {
		t.Errorf("expected empty subtitle body, got %q", result.Artifact.Content)
	}
}

func TestRunRejectsEmptyMedia(t *testing.T) {
	fake := &fakeTranscriber{}
	p, cfg := newTestPipeline(t, fake)

	_, err := p.Run(context.Background(), Request{
		OriginalFileName: "vacio.mp3",
		Model:            "base",
		Format:           artifact.Text,
	})
	if !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("empty request allocated staging files: %v", names)
	}
	if fake.gotPath != "" {
		t.Error("transcriber should not run for empty media")
	}
}

func TestRunRejectsNameWithoutExtension(t *testing.T) {
	p, cfg := newTestPipeline(t, &fakeTranscriber{})

	_, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "sin_extension",
		Model:            "base",
		Format:           artifact.Text,
	})
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("malformed request left staging files: %v", names)
	}
}

func TestRunUnknownModelCleansUp(t *testing.T) {
	p, cfg := newTestPipeline(t, &fakeTranscriber{})

	_, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "clip.mp3",
		Model:            "enormous",
		Format:           artifact.Text,
	})
	if !errors.Is(err, services.ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("staged media left behind after failure: %v", names)
	}
}

func TestRunTranscriptionFailureCleansUp(t *testing.T) {
	fake := &fakeTranscriber{err: errors.New("codec not supported")}
	p, cfg := newTestPipeline(t, fake)

	_, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "roto.mkv",
		Model:            "base",
		Format:           artifact.Text,
	})
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("staged media left behind after failure: %v", names)
	}
}

func TestRunCancellationCleansUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeTranscriber{onCall: cancel}
	p, cfg := newTestPipeline(t, fake)

	_, err := p.Run(ctx, Request{
		Media:            []byte("media"),
		OriginalFileName: "largo.mp3",
		Model:            "base",
		Format:           artifact.Text,
	})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if names := stagingEntries(t, cfg.Paths.StagingDir); len(names) != 0 {
		t.Errorf("staged media left behind after cancellation: %v", names)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	store, err := history.OpenPath(filepath.Join(cfg.Paths.LogDir, "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	fake := &fakeTranscriber{result: transcribe.Result{Language: "es", Text: "hola"}}
	registry := transcribe.NewRegistry(func(ctx context.Context, model transcribe.Model) (transcribe.Transcriber, error) {
		return fake, nil
	}, logging.NewNop())
	p := New(cfg, registry, store, logging.NewNop())

	if _, err := p.Run(context.Background(), Request{
		Media:            []byte("media"),
		OriginalFileName: "charla.mp3",
		Model:            "base",
		Format:           artifact.Text,
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := p.Run(context.Background(), Request{
		OriginalFileName: "vacio.mp3",
		Model:            "base",
		Format:           artifact.Text,
	}); !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}

	requests, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("history has %d requests, want 2", len(requests))
	}

	var packaged, failed *history.Request
	for _, request := range requests {
		switch request.Status {
		case history.StatusPackaged:
			packaged = request
		case history.StatusFailed:
			failed = request
		}
	}
	if packaged == nil || failed == nil {
		t.Fatalf("missing outcomes in history: %+v", requests)
	}
	if packaged.DetectedLanguage != "es" || !strings.HasPrefix(packaged.ArtifactName, "transcripcion_") {
		t.Errorf("packaged record = %+v", packaged)
	}
	if failed.ErrorMessage == "" {
		t.Error("failed record has no message")
	}
}
