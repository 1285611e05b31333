// AI generation endpoints of the [Backend]
package services

import (
	"context"
	"fmt"
	"net/http"
)

type candidatesResponse struct {
	Candidates []string `json:"candidates"`
}

type contentResponse struct {
	Content string `json:"content"`
}

type requirementsPayload struct {
	Requirements string `json:"requirements"`
}

// GenerateTitles produces a fresh set of AI title candidates.
//
// Calls POST /api/videos/{id}/titles/generate. Not idempotent; each call
// yields a new candidate set.
func (c *APIClient) GenerateTitles(ctx context.Context, sessionID string) ([]string, error) {
	var resp candidatesResponse
	endpoint := fmt.Sprintf("/api/videos/%s/titles/generate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Candidates, nil
}

// RegenerateTitles produces title candidates honoring free-text requirements.
//
// A distinct operation from plain generation: it carries the user's
// requirement payload to POST /api/videos/{id}/titles/regenerate.
func (c *APIClient) RegenerateTitles(ctx context.Context, sessionID, requirements string) ([]string, error) {
	var resp candidatesResponse
	endpoint := fmt.Sprintf("/api/videos/%s/titles/regenerate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, requirementsPayload{Requirements: requirements}, &resp); err != nil {
		return nil, err
	}
	return resp.Candidates, nil
}

// GenerateDescription produces an AI description.
//
// Calls POST /api/videos/{id}/description/generate.
func (c *APIClient) GenerateDescription(ctx context.Context, sessionID string) (string, error) {
	var resp contentResponse
	endpoint := fmt.Sprintf("/api/videos/%s/description/generate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// RegenerateDescription produces a description honoring free-text requirements.
func (c *APIClient) RegenerateDescription(ctx context.Context, sessionID, requirements string) (string, error) {
	var resp contentResponse
	endpoint := fmt.Sprintf("/api/videos/%s/description/regenerate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, requirementsPayload{Requirements: requirements}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// GenerateTimestamps produces an AI chapter/timestamp listing.
//
// Calls POST /api/videos/{id}/timestamps/generate.
func (c *APIClient) GenerateTimestamps(ctx context.Context, sessionID string) (string, error) {
	var resp contentResponse
	endpoint := fmt.Sprintf("/api/videos/%s/timestamps/generate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// GenerateThumbnail produces a single AI thumbnail and returns its URL.
//
// Calls POST /api/videos/{id}/thumbnail/generate. The upstream is flaky for
// thumbnails, so the orchestration layer fans out several of these calls and
// accepts partial results.
func (c *APIClient) GenerateThumbnail(ctx context.Context, sessionID string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	endpoint := fmt.Sprintf("/api/videos/%s/thumbnail/generate", sessionID)
	if err := c.doGeneration(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
