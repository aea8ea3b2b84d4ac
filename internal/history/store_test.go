package history

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	request, err := store.Create(ctx, "req-1", "entrevista.mp3", "base", "text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if request.Status != StatusPending {
		t.Errorf("Status = %q, want pending", request.Status)
	}
	if request.RequestID != "req-1" || request.SourceName != "entrevista.mp3" {
		t.Errorf("unexpected request: %+v", request)
	}
	if request.CreatedAt.IsZero() || request.UpdatedAt.IsZero() {
		t.Error("timestamps not recorded")
	}

	got, err := store.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != request.ID {
		t.Fatalf("GetByID returned %+v", got)
	}
}

func TestGetMissingRequest(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing request, got %+v", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	request, err := store.Create(ctx, "req-2", "clip.wav", "small", "subtitle")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, status := range []Status{StatusStaging, StatusLoading, StatusTranscribing, StatusFormatting} {
		if err := store.SetStatus(ctx, request.ID, status); err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		got, err := store.GetByID(ctx, request.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status != status {
			t.Errorf("Status = %q, want %q", got.Status, status)
		}
	}

	if err := store.SetStatus(ctx, request.ID, Status("bogus")); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestMarkPackaged(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	request, err := store.Create(ctx, "req-3", "charla.mp4", "base", "subtitle")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkPackaged(ctx, request.ID, "subtitulos_20240315_090507.srt", "es"); err != nil {
		t.Fatalf("MarkPackaged: %v", err)
	}

	got, err := store.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusPackaged {
		t.Errorf("Status = %q, want packaged", got.Status)
	}
	if got.ArtifactName != "subtitulos_20240315_090507.srt" || got.DetectedLanguage != "es" {
		t.Errorf("unexpected request: %+v", got)
	}
	if !got.Status.Terminal() {
		t.Error("packaged should be terminal")
	}
}

func TestMarkFailed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	request, err := store.Create(ctx, "req-4", "roto.ogg", "tiny", "text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkFailed(ctx, request.ID, "transcription failed"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	got, err := store.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusFailed || got.ErrorMessage != "transcription failed" {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.Create(ctx, id, id+".mp3", "base", "text"); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	requests, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("List returned %d requests", len(requests))
	}
	if requests[0].RequestID != "c" || requests[2].RequestID != "a" {
		t.Errorf("not newest first: %s, %s, %s",
			requests[0].RequestID, requests[1].RequestID, requests[2].RequestID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited List returned %d requests", len(limited))
	}
}

func TestSummarizeAndClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Create(ctx, "ok", "a.mp3", "base", "text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bad, err := store.Create(ctx, "bad", "b.mp3", "base", "text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkPackaged(ctx, ok.ID, "transcripcion_20240315_090507.txt", "en"); err != nil {
		t.Fatalf("MarkPackaged: %v", err)
	}
	if err := store.MarkFailed(ctx, bad.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	summary, err := store.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Total != 2 || summary.Packaged != 1 || summary.Failed != 1 {
		t.Errorf("Summary = %+v", summary)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear removed %d, want 2", removed)
	}
	requests, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List after Clear: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("history not empty after Clear: %d", len(requests))
	}
}

func TestSchemaVersionPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
}
