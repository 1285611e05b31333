package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/shared"
	tu "github.com/desertthunder/tubeflow/internal/testing"
	"golang.org/x/oauth2"
)

var testToken = oauth2.Token{AccessToken: "access-123"}

func testClient(baseURL string) *services.APIClient {
	return services.NewAPIClient(services.APIClientOpts{
		BaseURL:   baseURL,
		Tokens:    services.StaticToken("test-token"),
		RateLimit: 1000, // effectively unlimited for tests
	})
}

func TestAPIClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Applies Defaults", func(t *testing.T) {
			c := services.NewAPIClient(services.APIClientOpts{})
			if services.BaseURLOf(c) != "http://localhost:8000" {
				t.Errorf("expected default base URL, got %s", services.BaseURLOf(c))
			}
			if services.HTTPClientOf(c) != http.DefaultClient {
				t.Error("expected http.DefaultClient")
			}
		})
	})

	t.Run("Auth Gating", func(t *testing.T) {
		t.Run("Empty Token Fails Before Any Network Call", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(nil, errors.New("must not be reached"))
			c := services.NewAPIClient(services.APIClientOpts{
				Tokens:     services.StaticToken(""),
				HTTPClient: &http.Client{Transport: rt},
				RateLimit:  1000,
			})

			_, err := c.GenerateTitles(context.Background(), "session-1")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if rt.Calls() != 0 {
				t.Errorf("expected zero transport calls, got %d", rt.Calls())
			}
		})

		t.Run("Missing Token Source Fails The Same Way", func(t *testing.T) {
			c := services.NewAPIClient(services.APIClientOpts{RateLimit: 1000})
			if _, err := c.FetchPreview(context.Background(), "session-1"); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("Error Classification", func(t *testing.T) {
		tests := []struct {
			name     string
			status   int
			expected error
		}{
			{"Unauthorized", http.StatusUnauthorized, shared.ErrAuthFailed},
			{"Not Found", http.StatusNotFound, shared.ErrNotFound},
			{"Bad Request", http.StatusBadRequest, shared.ErrValidation},
			{"Unprocessable Entity", http.StatusUnprocessableEntity, shared.ErrValidation},
			{"Internal Server Error", http.StatusInternalServerError, shared.ErrServer},
			{"Bad Gateway", http.StatusBadGateway, shared.ErrServer},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(tc.status)
					json.NewEncoder(w).Encode(map[string]string{"detail": "something happened"})
				}))
				defer server.Close()

				_, err := testClient(server.URL).FetchPreview(context.Background(), "session-1")
				if !errors.Is(err, tc.expected) {
					t.Errorf("expected %v, got %v", tc.expected, err)
				}
				if !strings.Contains(err.Error(), "something happened") {
					t.Errorf("expected detail surfaced, got %v", err)
				}
			})
		}

		t.Run("Transport Failure Maps To Network Error", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
			c := services.NewAPIClient(services.APIClientOpts{
				Tokens:     services.StaticToken("tok"),
				HTTPClient: &http.Client{Transport: rt},
				RateLimit:  1000,
			})
			if _, err := c.FetchPreview(context.Background(), "session-1"); !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})
	})

	t.Run("GenerateTitles", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/api/videos/session-1/titles/generate" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("unexpected authorization header %q", got)
			}
			if r.Header.Get("X-Request-ID") == "" {
				t.Error("expected request id header")
			}
			json.NewEncoder(w).Encode(map[string][]string{"candidates": {"Title A", "Title B", "Title C"}})
		}))
		defer server.Close()

		titles, err := testClient(server.URL).GenerateTitles(context.Background(), "session-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(titles) != 3 || titles[0] != "Title A" {
			t.Errorf("unexpected candidates: %v", titles)
		}
	})

	t.Run("RegenerateTitles Carries Requirements", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos/session-1/titles/regenerate" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var payload struct {
				Requirements string `json:"requirements"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			if payload.Requirements != "under 40 characters" {
				t.Errorf("unexpected requirements %q", payload.Requirements)
			}
			json.NewEncoder(w).Encode(map[string][]string{"candidates": {"Short One"}})
		}))
		defer server.Close()

		titles, err := testClient(server.URL).RegenerateTitles(context.Background(), "session-1", "under 40 characters")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(titles) != 1 {
			t.Errorf("unexpected candidates: %v", titles)
		}
	})

	t.Run("SaveTitle Uses PUT", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if r.URL.Path != "/api/videos/session-1/title" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var payload struct {
				Title string `json:"title"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			if payload.Title != "Chosen Title" {
				t.Errorf("unexpected title %q", payload.Title)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		}))
		defer server.Close()

		if err := testClient(server.URL).SaveTitle(context.Background(), "session-1", "Chosen Title"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UpdatePrivacy Validates Locally", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, errors.New("must not be reached"))
		c := services.NewAPIClient(services.APIClientOpts{
			Tokens:     services.StaticToken("tok"),
			HTTPClient: &http.Client{Transport: rt},
			RateLimit:  1000,
		})

		err := c.UpdatePrivacy(context.Background(), "session-1", models.Privacy("secret"))
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if rt.Calls() != 0 {
			t.Errorf("expected no transport call, got %d", rt.Calls())
		}
	})

	t.Run("UploadVideo", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clip.mp4")
		if err := os.WriteFile(path, []byte("video bytes"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				t.Errorf("expected multipart content type, got %s", r.Header.Get("Content-Type"))
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("missing file part: %v", err)
			}
			defer file.Close()
			if header.Filename != "clip.mp4" {
				t.Errorf("unexpected filename %s", header.Filename)
			}
			json.NewEncoder(w).Encode(services.UploadReceipt{SessionID: "session-9"})
		}))
		defer server.Close()

		receipt, err := testClient(server.URL).UploadVideo(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.SessionID != "session-9" {
			t.Errorf("unexpected session id %s", receipt.SessionID)
		}
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/playlists" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Playlist{{ID: "pl-1", Title: "Devlogs", ItemCount: 12}})
		}))
		defer server.Close()

		playlists, err := testClient(server.URL).ListPlaylists(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(playlists) != 1 || playlists[0].Title != "Devlogs" {
			t.Errorf("unexpected playlists: %+v", playlists)
		}
	})

	t.Run("Download Returns Raw Bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/videos/session-1/download" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte("rendered video"))
		}))
		defer server.Close()

		data, err := testClient(server.URL).Download(context.Background(), "session-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "rendered video" {
			t.Errorf("unexpected body %q", data)
		}
	})
}

func TestFileTokenSource(t *testing.T) {
	t.Run("Missing File Means Signed Out", func(t *testing.T) {
		src := services.NewFileTokenSource(filepath.Join(t.TempDir(), "missing.json"))
		token, err := src.Token()
		if err != nil {
			t.Fatalf("absence should not be an error, got %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
		if src.Exists() {
			t.Error("expected Exists to be false")
		}
	})

	t.Run("Round Trip Through SaveToken", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auth", "token.json")
		if err := services.SaveToken(path, &testToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		src := services.NewFileTokenSource(path)
		token, err := src.Token()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "access-123" {
			t.Errorf("expected access-123, got %q", token)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	})

	t.Run("ClearToken Tolerates Absence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := services.ClearToken(path); err != nil {
			t.Errorf("expected no error for missing file, got %v", err)
		}

		services.SaveToken(path, &testToken)
		if err := services.ClearToken(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if services.NewFileTokenSource(path).Exists() {
			t.Error("expected token removed")
		}
	})

	t.Run("Corrupt File Is An Error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(path, []byte("not json"), 0600)

		if _, err := services.NewFileTokenSource(path).Token(); err == nil {
			t.Error("expected parse error")
		}
	})
}
