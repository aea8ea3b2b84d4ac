package transcribe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"transcriptor/internal/logging"
	"transcriptor/internal/services"
)

// Loader initializes a Transcriber for a catalog model. Loads may be slow
// (weights download, process warm-up), so they receive the request context.
type Loader func(ctx context.Context, model Model) (Transcriber, error)

// Registry resolves model identifiers to loaded Transcribers, loading each
// identifier at most once per process. Handles live until the process exits;
// there is no teardown.
type Registry struct {
	loader Loader
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	mu     sync.Mutex
	handle Transcriber
}

// NewRegistry builds a registry around the given loader.
func NewRegistry(loader Loader, logger *slog.Logger) *Registry {
	return &Registry{
		loader:  loader,
		logger:  logging.NewComponentLogger(logger, "registry"),
		entries: make(map[string]*registryEntry),
	}
}

// Resolve returns the Transcriber for the given model identifier.
//
// The first resolution of an identifier performs the load; later resolutions
// return the cached handle. Resolutions of different identifiers never block
// each other, and concurrent first resolutions of the same identifier
// serialize so exactly one load runs. A failed load is not cached: the next
// resolution retries.
func (r *Registry) Resolve(ctx context.Context, id string) (Transcriber, error) {
	model, ok := LookupModel(id)
	if !ok {
		return nil, services.Wrap(services.ErrUnknownModel, "loading", "resolve", "model "+id, nil)
	}

	r.mu.Lock()
	entry, ok := r.entries[model.ID]
	if !ok {
		entry = &registryEntry{}
		r.entries[model.ID] = entry
	}
	r.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.handle != nil {
		return entry.handle, nil
	}

	start := time.Now()
	handle, err := r.loader(ctx, model)
	if err != nil {
		return nil, services.Wrap(services.ErrModelLoad, "loading", "load model", model.ID, err)
	}
	if handle == nil {
		return nil, services.Wrap(services.ErrModelLoad, "loading", "load model", model.ID+": loader returned no handle", nil)
	}

	entry.handle = handle
	r.logger.Info("model loaded",
		logging.String(logging.FieldModel, model.ID),
		logging.Duration("elapsed", time.Since(start)),
	)
	return handle, nil
}

// Loaded reports which model identifiers currently hold a cached handle.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	snapshot := make(map[string]*registryEntry, len(r.entries))
	for id, entry := range r.entries {
		snapshot[id] = entry
	}
	r.mu.Unlock()

	var ids []string
	for id, entry := range snapshot {
		entry.mu.Lock()
		if entry.handle != nil {
			ids = append(ids, id)
		}
		entry.mu.Unlock()
	}
	return ids
}
