package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"transcriptor/internal/artifact"
	"transcriptor/internal/config"
	"transcriptor/internal/history"
	"transcriptor/internal/logging"
	"transcriptor/internal/services"
	"transcriptor/internal/staging"
	"transcriptor/internal/subtitles"
	"transcriptor/internal/transcribe"
)

// Request is one transcription job as submitted by the user.
type Request struct {
	Media            []byte
	OriginalFileName string
	Model            string
	Format           artifact.Format
}

// Result is the outcome of a finished request: the packaged download plus
// what the inference tool reported about the media.
type Result struct {
	Artifact      artifact.Artifact
	Language      string
	SegmentCount  int
	MediaDuration time.Duration
}

// Pipeline drives a request through staging, model loading, transcription,
// formatting, and packaging. One Pipeline serves many requests concurrently;
// each request stages its own media and cleans up after itself on every exit
// path.
type Pipeline struct {
	cfg      *config.Config
	registry *transcribe.Registry
	store    *history.Store
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a pipeline. The history store may be nil; recording is then
// skipped.
func New(cfg *config.Config, registry *transcribe.Registry, store *history.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
	}
}

// WithClock sets the packaging clock (for testing).
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run executes one request end to end. Failures surface a single error and
// no artifact; partial transcripts are never returned.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	requestID := uuid.New().String()
	ctx = services.WithRequestID(ctx, requestID)
	logger := p.logger.With(logging.String(logging.FieldCorrelationID, requestID))

	record := p.record(ctx, requestID, req)

	result, err := p.run(ctx, req, record, logger)
	if err != nil {
		p.markFailed(record, err)
		logger.Error("request failed",
			logging.String("source", req.OriginalFileName),
			logging.Error(err),
		)
		return Result{}, err
	}

	p.markPackaged(record, result)
	logger.Info("request packaged",
		logging.String("artifact", result.Artifact.FileName),
		logging.String("language", result.Language),
		logging.Int("segments", result.SegmentCount),
	)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, req Request, record *history.Request, logger *slog.Logger) (Result, error) {
	if len(req.Media) == 0 {
		return Result{}, services.Wrap(services.ErrMissingInput, "intake", "validate media", "no bytes supplied", nil)
	}

	p.transition(record, history.StatusStaging)
	staged, err := p.stage(ctx, req)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if removeErr := staged.Remove(); removeErr != nil {
			logger.Warn("staged media not removed",
				logging.String("path", staged.Path),
				logging.Error(removeErr),
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.transition(record, history.StatusLoading)
	handle, err := p.registry.Resolve(services.WithStage(ctx, "loading"), req.Model)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.transition(record, history.StatusTranscribing)
	transcription, err := handle.Transcribe(services.WithStage(ctx, "transcribing"), staged.Path)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTranscription, "transcribing", "run inference", "", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.transition(record, history.StatusFormatting)
	content, err := p.format(req.Format, transcription)
	if err != nil {
		return Result{}, err
	}

	packaged, err := artifact.Package(req.Format, content, p.now())
	if err != nil {
		return Result{}, err
	}

	return Result{
		Artifact:      packaged,
		Language:      transcription.Language,
		SegmentCount:  len(transcription.Segments),
		MediaDuration: mediaDuration(transcription.Segments),
	}, nil
}

func (p *Pipeline) stage(ctx context.Context, req Request) (*staging.File, error) {
	if _, err := staging.Extension(req.OriginalFileName); err != nil {
		return nil, err
	}
	dir := p.cfg.Paths.StagingDir
	minFree := p.cfg.Staging.MinFreeMiB * 1024 * 1024
	if err := staging.Preflight(dir, int64(len(req.Media)), minFree); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return staging.Stage(dir, req.OriginalFileName, req.Media)
}

func (p *Pipeline) format(format artifact.Format, transcription transcribe.Result) (string, error) {
	switch format {
	case artifact.Subtitle:
		return subtitles.RenderSRT(transcription.Segments)
	default:
		return transcription.Text, nil
	}
}

func mediaDuration(segments []transcribe.Segment) time.Duration {
	if len(segments) == 0 {
		return 0
	}
	end := segments[len(segments)-1].End
	if end < 0 {
		return 0
	}
	return time.Duration(end * float64(time.Second))
}

func (p *Pipeline) record(ctx context.Context, requestID string, req Request) *history.Request {
	if p.store == nil {
		return nil
	}
	record, err := p.store.Create(ctx, requestID, req.OriginalFileName, req.Model, string(req.Format))
	if err != nil {
		p.logger.Warn("history record not created", logging.Error(err))
		return nil
	}
	return record
}

func (p *Pipeline) transition(record *history.Request, status history.Status) {
	if p.store == nil || record == nil {
		return
	}
	if err := p.store.SetStatus(context.Background(), record.ID, status); err != nil {
		p.logger.Warn("history status not updated", logging.Error(err))
	}
}

func (p *Pipeline) markFailed(record *history.Request, cause error) {
	if p.store == nil || record == nil {
		return
	}
	message := services.UserMessage(cause)
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		message = "Request cancelled before completion."
	}
	if err := p.store.MarkFailed(context.Background(), record.ID, message); err != nil {
		p.logger.Warn("history failure not recorded", logging.Error(err))
	}
}

func (p *Pipeline) markPackaged(record *history.Request, result Result) {
	if p.store == nil || record == nil {
		return
	}
	if err := p.store.MarkPackaged(context.Background(), record.ID, result.Artifact.FileName, result.Language); err != nil {
		p.logger.Warn("history completion not recorded", logging.Error(err))
	}
}
