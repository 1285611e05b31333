// Video lifecycle endpoints of the [Backend]: upload, preview, saves, publish
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/shared"
)

// UploadVideo sends the raw video file as multipart form data.
//
// Calls POST /api/videos. Uses the extended upload timeout since payloads may
// be large. The returned receipt carries the backend-assigned session id and
// the initial server record.
func (c *APIClient) UploadVideo(ctx context.Context, path string) (*UploadReceipt, error) {
	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/videos", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", shared.GenerateID())
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return nil, classifyStatus(resp.StatusCode, errResp.Detail)
		}
		return nil, classifyStatus(resp.StatusCode, "")
	}

	var receipt UploadReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode upload receipt: %w", err)
	}

	return &receipt, nil
}

// FetchPreview returns the authoritative current record as last saved.
//
// Calls GET /api/videos/{id}/preview.
func (c *APIClient) FetchPreview(ctx context.Context, sessionID string) (*models.VideoRecord, error) {
	var record models.VideoRecord
	endpoint := fmt.Sprintf("/api/videos/%s/preview", sessionID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveTitle persists the chosen title. Idempotent.
func (c *APIClient) SaveTitle(ctx context.Context, sessionID, title string) error {
	payload := struct {
		Title string `json:"title"`
	}{Title: title}
	endpoint := fmt.Sprintf("/api/videos/%s/title", sessionID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil)
}

// SaveDescription persists the chosen description and optional template. Idempotent.
func (c *APIClient) SaveDescription(ctx context.Context, sessionID, description, template string) error {
	payload := struct {
		Description string `json:"description"`
		Template    string `json:"template,omitempty"`
	}{Description: description, Template: template}
	endpoint := fmt.Sprintf("/api/videos/%s/description", sessionID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil)
}

// SaveTimestamps persists the chosen timestamp listing. Idempotent.
func (c *APIClient) SaveTimestamps(ctx context.Context, sessionID, timestamps string) error {
	payload := struct {
		Timestamps string `json:"timestamps"`
	}{Timestamps: timestamps}
	endpoint := fmt.Sprintf("/api/videos/%s/timestamps", sessionID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil)
}

// UpdatePrivacy sets the desired privacy status. Idempotent.
func (c *APIClient) UpdatePrivacy(ctx context.Context, sessionID string, privacy models.Privacy) error {
	if err := privacy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	payload := struct {
		Privacy models.Privacy `json:"privacy"`
	}{Privacy: privacy}
	endpoint := fmt.Sprintf("/api/videos/%s/privacy", sessionID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil)
}

// SetPlaylist assigns the video to a playlist. Idempotent.
func (c *APIClient) SetPlaylist(ctx context.Context, sessionID, playlistID string) error {
	payload := struct {
		PlaylistID string `json:"playlist_id"`
	}{PlaylistID: playlistID}
	endpoint := fmt.Sprintf("/api/videos/%s/playlist", sessionID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil)
}

// ListPlaylists returns the playlist candidates for selection.
//
// Calls GET /api/playlists.
func (c *APIClient) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.doRequest(ctx, http.MethodGet, "/api/playlists", nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Publish performs the actual YouTube upload for the session.
//
// Calls POST /api/videos/{id}/publish.
func (c *APIClient) Publish(ctx context.Context, sessionID string) (*PublishReceipt, error) {
	var receipt PublishReceipt
	endpoint := fmt.Sprintf("/api/videos/%s/publish", sessionID)
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Download retrieves the rendered video bytes.
//
// Calls GET /api/videos/{id}/download with the extended timeout.
func (c *APIClient) Download(ctx context.Context, sessionID string) ([]byte, error) {
	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("/api/videos/%s/download", sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, "")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read video body: %w", err)
	}
	return data, nil
}
