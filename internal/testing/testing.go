// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/services"
)

// MockBackend is a configurable test double for [services.Backend].
//
// Zero value succeeds with empty results; set fields to inject candidates or
// failures. Call counters let tests assert which operations ran.
type MockBackend struct {
	mu sync.Mutex

	Titles      []string
	Description string
	Timestamps  string
	Thumbnail   string
	Preview     *models.VideoRecord
	PlaylistSet []models.Playlist
	Receipt     *services.PublishReceipt
	UploadResp  *services.UploadReceipt
	VideoBytes  []byte

	UploadErr      error
	TitlesErr      error
	DescriptionErr error
	TimestampsErr  error
	ThumbnailErr   error
	// ThumbnailErrs overrides ThumbnailErr per call when non-empty, indexed
	// by call order.
	ThumbnailErrs []error
	PreviewErr    error
	SaveErr       error
	PrivacyErr    error
	PlaylistErr   error
	ListErr       error
	PublishErr    error
	DownloadErr   error

	UploadCalls    int
	TitleCalls     int
	RegenCalls     int
	DescCalls      int
	StampCalls     int
	ThumbCalls     int
	PreviewCalls   int
	SaveTitleCalls int
	SaveDescCalls  int
	SaveStampCalls int
	PrivacyCalls   int
	PlaylistCalls  int
	ListCalls      int
	PublishCalls   int
	DownloadCalls  int

	SavedTitle   string
	SavedDesc    string
	SavedStamps  string
	SavedPrivacy models.Privacy
}

var _ services.Backend = (*MockBackend)(nil)

func (m *MockBackend) UploadVideo(ctx context.Context, path string) (*services.UploadReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls++
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.UploadResp != nil {
		return m.UploadResp, nil
	}
	return &services.UploadReceipt{SessionID: "session-1"}, nil
}

func (m *MockBackend) GenerateTitles(ctx context.Context, sessionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TitleCalls++
	if m.TitlesErr != nil {
		return nil, m.TitlesErr
	}
	return m.Titles, nil
}

func (m *MockBackend) RegenerateTitles(ctx context.Context, sessionID, requirements string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegenCalls++
	if m.TitlesErr != nil {
		return nil, m.TitlesErr
	}
	return m.Titles, nil
}

func (m *MockBackend) GenerateDescription(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescCalls++
	if m.DescriptionErr != nil {
		return "", m.DescriptionErr
	}
	return m.Description, nil
}

func (m *MockBackend) RegenerateDescription(ctx context.Context, sessionID, requirements string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegenCalls++
	if m.DescriptionErr != nil {
		return "", m.DescriptionErr
	}
	return m.Description, nil
}

func (m *MockBackend) GenerateTimestamps(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StampCalls++
	if m.TimestampsErr != nil {
		return "", m.TimestampsErr
	}
	return m.Timestamps, nil
}

func (m *MockBackend) GenerateThumbnail(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := m.ThumbCalls
	m.ThumbCalls++
	if len(m.ThumbnailErrs) > 0 {
		if call < len(m.ThumbnailErrs) && m.ThumbnailErrs[call] != nil {
			return "", m.ThumbnailErrs[call]
		}
	} else if m.ThumbnailErr != nil {
		return "", m.ThumbnailErr
	}
	if m.Thumbnail != "" {
		return m.Thumbnail, nil
	}
	return fmt.Sprintf("https://thumbs.example/%s/%d.png", sessionID, call), nil
}

func (m *MockBackend) FetchPreview(ctx context.Context, sessionID string) (*models.VideoRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PreviewCalls++
	if m.PreviewErr != nil {
		return nil, m.PreviewErr
	}
	if m.Preview != nil {
		return m.Preview, nil
	}
	return &models.VideoRecord{Privacy: models.PrivacyPublic}, nil
}

func (m *MockBackend) SaveTitle(ctx context.Context, sessionID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveTitleCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedTitle = title
	return nil
}

func (m *MockBackend) SaveDescription(ctx context.Context, sessionID, description, template string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveDescCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedDesc = description
	return nil
}

func (m *MockBackend) SaveTimestamps(ctx context.Context, sessionID, timestamps string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveStampCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedStamps = timestamps
	return nil
}

func (m *MockBackend) UpdatePrivacy(ctx context.Context, sessionID string, privacy models.Privacy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrivacyCalls++
	if m.PrivacyErr != nil {
		return m.PrivacyErr
	}
	m.SavedPrivacy = privacy
	return nil
}

func (m *MockBackend) SetPlaylist(ctx context.Context, sessionID, playlistID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlaylistCalls++
	return m.PlaylistErr
}

func (m *MockBackend) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.PlaylistSet, nil
}

func (m *MockBackend) Publish(ctx context.Context, sessionID string) (*services.PublishReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls++
	if m.PublishErr != nil {
		return nil, m.PublishErr
	}
	if m.Receipt != nil {
		return m.Receipt, nil
	}
	return &services.PublishReceipt{Message: "published"}, nil
}

func (m *MockBackend) Download(ctx context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DownloadCalls++
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}
	return m.VideoBytes, nil
}

// MemorySessionStore is an in-memory [repositories.SessionStore] double.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *models.UploadSession

	SaveErr  error
	LoadErr  error
	ClearErr error
}

func (s *MemorySessionStore) Save(ctx context.Context, session *models.UploadSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	copied := *session
	s.session = &copied
	return nil
}

func (s *MemorySessionStore) Load(ctx context.Context) (*models.UploadSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemorySessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.session = nil
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error

	mu    sync.Mutex
	calls int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.response, m.err
}

// Calls returns how many requests passed through the round tripper.
func (m *MockRoundTripper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

var _ io.Writer = (*FWriter)(nil)
