package services

import (
	"context"

	"github.com/desertthunder/tubeflow/internal/models"
)

// TokenSource supplies the bearer credential for backend calls.
//
// Absence (an empty token with no error) means the user is not authenticated.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a [TokenSource] returning a fixed token. Useful in tests and
// for tokens injected via the environment.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// UploadReceipt is the backend's response to a raw video upload.
type UploadReceipt struct {
	SessionID string             `json:"session_id"`
	Record    models.VideoRecord `json:"record"`
}

// PublishReceipt is the backend's response to a publish request.
type PublishReceipt struct {
	VideoURL string `json:"video_url"`
	Message  string `json:"message"`
}

// Backend defines every remote operation the workflow orchestrates.
//
// Generation endpoints are not idempotent: each call produces a new candidate
// set. Save and privacy endpoints are idempotent: replaying the same payload
// yields the same stored state.
type Backend interface {
	// UploadVideo sends the raw video file. Uses the extended upload timeout.
	UploadVideo(ctx context.Context, path string) (*UploadReceipt, error)

	// GenerateTitles produces a fresh set of AI title candidates.
	GenerateTitles(ctx context.Context, sessionID string) ([]string, error)
	// RegenerateTitles produces title candidates honoring free-text requirements.
	RegenerateTitles(ctx context.Context, sessionID, requirements string) ([]string, error)
	// GenerateDescription produces an AI description.
	GenerateDescription(ctx context.Context, sessionID string) (string, error)
	// RegenerateDescription produces a description honoring free-text requirements.
	RegenerateDescription(ctx context.Context, sessionID, requirements string) (string, error)
	// GenerateTimestamps produces an AI chapter/timestamp listing.
	GenerateTimestamps(ctx context.Context, sessionID string) (string, error)
	// GenerateThumbnail produces a single AI thumbnail and returns its URL.
	GenerateThumbnail(ctx context.Context, sessionID string) (string, error)

	// FetchPreview returns the authoritative current record as last saved.
	FetchPreview(ctx context.Context, sessionID string) (*models.VideoRecord, error)

	// SaveTitle persists the chosen title.
	SaveTitle(ctx context.Context, sessionID, title string) error
	// SaveDescription persists the chosen description and optional template.
	SaveDescription(ctx context.Context, sessionID, description, template string) error
	// SaveTimestamps persists the chosen timestamp listing.
	SaveTimestamps(ctx context.Context, sessionID, timestamps string) error

	// UpdatePrivacy sets the desired privacy status.
	UpdatePrivacy(ctx context.Context, sessionID string, privacy models.Privacy) error
	// SetPlaylist assigns the video to a playlist.
	SetPlaylist(ctx context.Context, sessionID, playlistID string) error
	// ListPlaylists returns the playlist candidates for selection.
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)

	// Publish performs the actual YouTube upload for the session.
	Publish(ctx context.Context, sessionID string) (*PublishReceipt, error)
	// Download retrieves the rendered video bytes.
	Download(ctx context.Context, sessionID string) ([]byte, error)
}
