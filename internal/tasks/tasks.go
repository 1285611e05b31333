package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/repositories"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/workflow"
)

// thumbnailFanout is the number of parallel single-thumbnail requests per
// batch. The upstream is flaky for thumbnails; the batch succeeds with a
// partial set if at least one request lands.
const thumbnailFanout = 5

type genInput struct {
	sessionID    string
	requirements string
}

type saveInput struct {
	sessionID string
	value     string
	extra     string
}

type privacyInput struct {
	sessionID string
	privacy   models.Privacy
}

// UploadEngine orchestrates one video's journey from raw file to published
// YouTube video.
//
// It owns the workflow [workflow.Machine], the in-memory stage content and
// publish settings, and one task [Client] per remote capability. All state
// mutation happens under a single mutex; remote calls run outside it.
type UploadEngine struct {
	backend services.Backend
	store   repositories.SessionStore
	machine *workflow.Machine

	mu            sync.Mutex
	session       *models.UploadSession
	content       models.StageContent
	settings      models.PublishSettings
	lastPreview   *models.VideoRecord
	lastPreviewID string
	playlists     []models.Playlist
	needPlaylists bool

	upload      *Client[string, *services.UploadReceipt]
	titles      *Client[genInput, []string]
	description *Client[genInput, string]
	timestamps  *Client[genInput, string]
	thumbnails  *Client[string, BatchResult[string]]
	preview     *Client[string, *models.VideoRecord]
	saveTitle   *Client[saveInput, struct{}]
	saveDesc    *Client[saveInput, struct{}]
	saveStamps  *Client[saveInput, struct{}]
	privacy     *Client[privacyInput, struct{}]
	playlist    *Client[saveInput, struct{}]
	listPls     *Client[struct{}, []models.Playlist]
	publish     *Client[string, *services.PublishReceipt]
	download    *Client[string, []byte]
}

// NewUploadEngine creates an engine bound to the given backend and session store.
func NewUploadEngine(backend services.Backend, store repositories.SessionStore) *UploadEngine {
	e := &UploadEngine{
		backend:  backend,
		store:    store,
		machine:  workflow.NewMachine(),
		settings: models.DefaultPublishSettings(),
	}

	e.machine.OnEnterFinal(func() {
		e.mu.Lock()
		e.needPlaylists = true
		e.mu.Unlock()
	})

	e.upload = NewClient(backend.UploadVideo)
	e.titles = NewClient(func(ctx context.Context, in genInput) ([]string, error) {
		if in.requirements != "" {
			return backend.RegenerateTitles(ctx, in.sessionID, in.requirements)
		}
		return backend.GenerateTitles(ctx, in.sessionID)
	})
	e.description = NewClient(func(ctx context.Context, in genInput) (string, error) {
		if in.requirements != "" {
			return backend.RegenerateDescription(ctx, in.sessionID, in.requirements)
		}
		return backend.GenerateDescription(ctx, in.sessionID)
	})
	e.timestamps = NewClient(func(ctx context.Context, in genInput) (string, error) {
		return backend.GenerateTimestamps(ctx, in.sessionID)
	})
	e.thumbnails = NewClient(e.fanoutThumbnails)
	e.preview = NewClient(backend.FetchPreview)
	e.saveTitle = NewClient(func(ctx context.Context, in saveInput) (struct{}, error) {
		return struct{}{}, backend.SaveTitle(ctx, in.sessionID, in.value)
	})
	e.saveDesc = NewClient(func(ctx context.Context, in saveInput) (struct{}, error) {
		return struct{}{}, backend.SaveDescription(ctx, in.sessionID, in.value, in.extra)
	})
	e.saveStamps = NewClient(func(ctx context.Context, in saveInput) (struct{}, error) {
		return struct{}{}, backend.SaveTimestamps(ctx, in.sessionID, in.value)
	})
	e.privacy = NewClient(func(ctx context.Context, in privacyInput) (struct{}, error) {
		return struct{}{}, backend.UpdatePrivacy(ctx, in.sessionID, in.privacy)
	})
	e.playlist = NewClient(func(ctx context.Context, in saveInput) (struct{}, error) {
		return struct{}{}, backend.SetPlaylist(ctx, in.sessionID, in.value)
	})
	e.listPls = NewClient(func(ctx context.Context, _ struct{}) ([]models.Playlist, error) {
		return backend.ListPlaylists(ctx)
	})
	e.publish = NewClient(backend.Publish)
	e.download = NewClient(backend.Download)

	return e
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Machine returns the workflow step sequencer.
func (e *UploadEngine) Machine() *workflow.Machine { return e.machine }

// Session returns the active in-memory session, or nil.
func (e *UploadEngine) Session() *models.UploadSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Content returns a copy of the current stage content.
func (e *UploadEngine) Content() models.StageContent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// Settings returns the current publish settings.
func (e *UploadEngine) Settings() models.PublishSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Playlists returns the last fetched playlist candidates.
func (e *UploadEngine) Playlists() []models.Playlist {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playlists
}

// LastPreview returns the most recent preview record, or nil.
func (e *UploadEngine) LastPreview() *models.VideoRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPreview
}

// StepCompleted reports the derived completion state for a step.
func (e *UploadEngine) StepCompleted(step workflow.Step) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return workflow.Completed(step, e.session, &e.content)
}

// SelectTitle records the user's pick among the generated title candidates.
func (e *UploadEngine) SelectTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content.SelectedTitle = title
}

// SetCustomTitle records a user-typed title override.
func (e *UploadEngine) SetCustomTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content.CustomTitle = title
}

// SelectThumbnail records the user's pick among the generated thumbnails.
func (e *UploadEngine) SelectThumbnail(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content.SelectedThumbnail = url
}

// SetPrivacy records the desired privacy locally; ApplyPrivacy persists it.
func (e *UploadEngine) SetPrivacy(p models.Privacy) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Privacy = p
	return nil
}

// SelectPlaylist records the desired playlist locally; ApplyPlaylist persists it.
func (e *UploadEngine) SelectPlaylist(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.PlaylistID = id
}

// EditSeed returns the value an editor should be seeded with for a step,
// resolved through the override order.
func (e *UploadEngine) EditSeed(step workflow.Step) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch step {
	case workflow.StepTitle:
		return e.content.EffectiveTitle()
	case workflow.StepDescription:
		return e.content.EffectiveDescription()
	case workflow.StepTimestamps:
		return e.content.EffectiveTimestamps()
	case workflow.StepThumbnail:
		return e.content.EffectiveThumbnail()
	default:
		return ""
	}
}

// Restore loads the persisted session, if any, into memory.
//
// Absence is not an error; the workflow simply starts fresh. When a session is
// restored the upload step is already complete, so the machine advances past it.
func (e *UploadEngine) Restore(ctx context.Context) (*models.UploadSession, error) {
	if e.store == nil {
		return nil, nil
	}
	session, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	e.mu.Lock()
	e.session = session
	e.mu.Unlock()

	if e.machine.Current() == workflow.StepUpload {
		e.machine.Advance()
	}
	return session, nil
}

// ResolveSessionID resolves the active session id with the documented
// priority: in-memory session, then the most recent preview fetch, then the
// persisted store. All three empty is a loud failure, never a silent no-op.
func (e *UploadEngine) ResolveSessionID(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.session != nil && e.session.ID != "" {
		id := e.session.ID
		e.mu.Unlock()
		return id, nil
	}
	if e.lastPreviewID != "" {
		id := e.lastPreviewID
		e.mu.Unlock()
		return id, nil
	}
	e.mu.Unlock()

	if e.store != nil {
		session, err := e.store.Load(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load persisted session: %w", err)
		}
		if session != nil && session.ID != "" {
			e.mu.Lock()
			e.session = session
			e.mu.Unlock()
			return session.ID, nil
		}
	}

	return "", fmt.Errorf("%w: upload a video first", shared.ErrMissingSession)
}

// Upload sends the raw file, persists the resulting session, and advances the
// workflow to the title step.
func (e *UploadEngine) Upload(ctx context.Context, path string, progress chan<- ProgressUpdate) (*models.UploadSession, error) {
	e.sendProgress(progress, uploadingUpdate(path))

	receipt, err := e.upload.Invoke(ctx, path)
	if err != nil {
		return nil, err
	}

	session := &models.UploadSession{
		ID:     receipt.SessionID,
		Record: receipt.Record,
	}

	if e.store != nil {
		if err := e.store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("upload succeeded but session could not be persisted: %w", err)
		}
	}

	e.mu.Lock()
	e.session = session
	e.content = models.StageContent{}
	e.settings = models.DefaultPublishSettings()
	e.mu.Unlock()

	if e.machine.Current() == workflow.StepUpload {
		e.machine.Advance()
	}

	e.sendProgress(progress, uploadedUpdate(session))
	return session, nil
}

// Reset clears the persisted session and all in-memory workflow state.
//
// Used on explicit reset or logout.
func (e *UploadEngine) Reset(ctx context.Context) error {
	if e.store != nil {
		if err := e.store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear persisted session: %w", err)
		}
	}

	e.mu.Lock()
	e.session = nil
	e.content = models.StageContent{}
	e.settings = models.DefaultPublishSettings()
	e.lastPreview = nil
	e.lastPreviewID = ""
	e.playlists = nil
	e.mu.Unlock()

	e.machine = workflow.NewMachine()
	e.machine.OnEnterFinal(func() {
		e.mu.Lock()
		e.needPlaylists = true
		e.mu.Unlock()
	})
	return nil
}

// NextStage advances the preview sub-sequence, refreshing playlist candidates
// exactly once when the settings stage hands off to the final stage.
func (e *UploadEngine) NextStage(ctx context.Context) (workflow.PreviewStage, error) {
	stage := e.machine.AdvanceStage()

	e.mu.Lock()
	need := e.needPlaylists
	e.needPlaylists = false
	e.mu.Unlock()

	if need {
		if _, err := e.LoadPlaylists(ctx); err != nil {
			return stage, err
		}
	}
	return stage, nil
}

// LoadPlaylists fetches the playlist candidates for the settings stage.
func (e *UploadEngine) LoadPlaylists(ctx context.Context) ([]models.Playlist, error) {
	playlists, err := e.listPls.Invoke(ctx, struct{}{})
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.playlists = playlists
	e.mu.Unlock()
	return playlists, nil
}
