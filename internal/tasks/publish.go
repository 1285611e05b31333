package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/shared"
)

// FetchPreview retrieves the authoritative current record from the backend
// and refreshes the persisted session snapshot.
func (e *UploadEngine) FetchPreview(ctx context.Context) (*models.VideoRecord, error) {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return nil, err
	}

	record, err := e.preview.Invoke(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.lastPreview = record
	e.lastPreviewID = sessionID
	session := e.session
	if session != nil && session.ID == sessionID {
		session.Record = *record
	}
	e.mu.Unlock()

	if session != nil && e.store != nil {
		if err := e.store.Save(ctx, session); err != nil {
			return record, fmt.Errorf("preview fetched but session snapshot not persisted: %w", err)
		}
	}

	return record, nil
}

// SaveTitle persists an edited title and records it as the custom override so
// every later read reflects the edit without a re-fetch.
func (e *UploadEngine) SaveTitle(ctx context.Context, title string) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", shared.ErrInvalidInput)
	}
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}
	if _, err := e.saveTitle.Invoke(ctx, saveInput{sessionID: sessionID, value: title}); err != nil {
		return err
	}
	e.mu.Lock()
	e.content.CustomTitle = title
	e.mu.Unlock()
	return nil
}

// SaveDescription persists an edited description (and optional template) and
// records the override locally.
func (e *UploadEngine) SaveDescription(ctx context.Context, description, template string) error {
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", shared.ErrInvalidInput)
	}
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}
	if _, err := e.saveDesc.Invoke(ctx, saveInput{sessionID: sessionID, value: description, extra: template}); err != nil {
		return err
	}
	e.mu.Lock()
	e.content.CustomDescription = description
	if template != "" {
		e.content.CustomDescriptionTemplate = template
	}
	e.mu.Unlock()
	return nil
}

// SaveTimestamps persists an edited timestamp listing and records the
// override locally.
func (e *UploadEngine) SaveTimestamps(ctx context.Context, timestamps string) error {
	if timestamps == "" {
		return fmt.Errorf("%w: timestamps must not be empty", shared.ErrInvalidInput)
	}
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}
	if _, err := e.saveStamps.Invoke(ctx, saveInput{sessionID: sessionID, value: timestamps}); err != nil {
		return err
	}
	e.mu.Lock()
	e.content.CustomTimestamps = timestamps
	e.mu.Unlock()
	return nil
}

// ApplyPrivacy persists the desired privacy status. Idempotent: replaying the
// same value yields the same stored state.
func (e *UploadEngine) ApplyPrivacy(ctx context.Context, privacy models.Privacy) error {
	if err := privacy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}
	if _, err := e.privacy.Invoke(ctx, privacyInput{sessionID: sessionID, privacy: privacy}); err != nil {
		return err
	}
	e.mu.Lock()
	e.settings.Privacy = privacy
	e.mu.Unlock()
	return nil
}

// ApplyPlaylist persists the playlist assignment.
func (e *UploadEngine) ApplyPlaylist(ctx context.Context, playlistID string) error {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}
	if _, err := e.playlist.Invoke(ctx, saveInput{sessionID: sessionID, value: playlistID}); err != nil {
		return err
	}
	e.mu.Lock()
	e.settings.PlaylistID = playlistID
	e.mu.Unlock()
	return nil
}

// Publish performs the terminal publish sequence: privacy update, then the
// YouTube upload.
//
// Gated by explicit confirmation. If the privacy update fails the upload is
// never attempted. If the upload fails the workflow stays on the final stage
// with the error surfaced; the privacy update is accepted as durable and not
// rolled back.
func (e *UploadEngine) Publish(ctx context.Context, confirmed bool, progress chan<- ProgressUpdate) (*services.PublishReceipt, error) {
	if !confirmed {
		return nil, fmt.Errorf("%w: confirmation required", shared.ErrPublishAborted)
	}

	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	privacy := e.settings.Privacy
	e.mu.Unlock()

	e.sendProgress(progress, publishPrivacyUpdate(privacy))
	if _, err := e.privacy.Invoke(ctx, privacyInput{sessionID: sessionID, privacy: privacy}); err != nil {
		return nil, fmt.Errorf("privacy update failed, publish not attempted: %w", err)
	}

	e.sendProgress(progress, publishingUpdate())
	receipt, err := e.publish.Invoke(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, publishedUpdate(receipt))
	return receipt, nil
}

// Download fetches the rendered video and writes it to the given path.
func (e *UploadEngine) Download(ctx context.Context, path string, progress chan<- ProgressUpdate) error {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}

	e.sendProgress(progress, downloadingUpdate(path))
	data, err := e.download.Invoke(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write downloaded video: %w", err)
	}
	return nil
}
