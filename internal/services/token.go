// Token persistence for the YouTube OAuth credential
package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// FileTokenSource is a [TokenSource] backed by a cached OAuth token on disk.
//
// A missing token file means "not signed in", not an error: Token returns an
// empty string and callers surface the authentication failure without
// alarming the user about the missing file.
type FileTokenSource struct {
	path string
}

// NewFileTokenSource creates a token source reading from the given path.
func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

// Token returns the cached access token, or empty when no credential exists.
func (f *FileTokenSource) Token() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("failed to parse token file: %w", err)
	}
	return token.AccessToken, nil
}

// Exists reports whether a cached credential is present on disk.
func (f *FileTokenSource) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// SaveToken caches an OAuth token to disk with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// ClearToken removes the cached credential. Missing file is not an error.
func ClearToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
