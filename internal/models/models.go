package models

import (
	"fmt"
	"time"
)

// Privacy is a YouTube privacy status for a published video.
type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyUnlisted Privacy = "unlisted"
	PrivacyPrivate  Privacy = "private"
)

// Validate checks that the privacy value is one of the accepted statuses.
func (p Privacy) Validate() error {
	switch p {
	case PrivacyPublic, PrivacyUnlisted, PrivacyPrivate:
		return nil
	}
	return fmt.Errorf("invalid privacy status: %q", string(p))
}

// VideoRecord is the last-known server-side representation of a video.
//
// It is a snapshot, not authoritative; the preview endpoint returns the
// current record as last saved by the backend.
type VideoRecord struct {
	Path         string  `json:"path"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Timestamps   string  `json:"timestamps"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Privacy      Privacy `json:"privacy"`
	PlaylistID   string  `json:"playlist_id"`
	Status       string  `json:"status"`
}

// UploadSession represents one video moving through the pipeline.
//
// Created when a raw file upload succeeds, persisted immediately, and cleared
// only on explicit reset or logout.
type UploadSession struct {
	ID        string      `json:"id"`
	Record    VideoRecord `json:"record"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Validate checks that the session carries a backend-assigned identifier.
func (s *UploadSession) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	return nil
}

// Playlist represents a playlist candidate for the publish settings step.
type Playlist struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ItemCount int    `json:"item_count"`
}

// PublishSettings holds the privacy and playlist selection for publishing.
type PublishSettings struct {
	Privacy    Privacy `json:"privacy"`
	PlaylistID string  `json:"playlist_id,omitempty"`
}

// DefaultPublishSettings returns settings with the public privacy default.
func DefaultPublishSettings() PublishSettings {
	return PublishSettings{Privacy: PrivacyPublic}
}

// StageContent is the mutable bag of generated and user-chosen content scoped
// to one upload session.
//
// For every field the resolution order is: custom override > user-selected
// candidate > first generated candidate > empty. The Effective* accessors are
// the only supported read path so every consumer (preview assembly, publish
// payload, edit seeding) applies the same order.
type StageContent struct {
	Titles        []string `json:"titles"`
	SelectedTitle string   `json:"selected_title"`
	CustomTitle   string   `json:"custom_title"`

	Description               string `json:"description"`
	CustomDescription         string `json:"custom_description"`
	CustomDescriptionTemplate string `json:"custom_description_template"`

	Timestamps       string `json:"timestamps"`
	CustomTimestamps string `json:"custom_timestamps"`

	Thumbnails        []string `json:"thumbnails"`
	SelectedThumbnail string   `json:"selected_thumbnail"`
}

// EffectiveTitle resolves the title per the override order.
func (c *StageContent) EffectiveTitle() string {
	if c.CustomTitle != "" {
		return c.CustomTitle
	}
	if c.SelectedTitle != "" {
		return c.SelectedTitle
	}
	if len(c.Titles) > 0 {
		return c.Titles[0]
	}
	return ""
}

// EffectiveDescription resolves the description per the override order.
func (c *StageContent) EffectiveDescription() string {
	if c.CustomDescription != "" {
		return c.CustomDescription
	}
	return c.Description
}

// EffectiveTimestamps resolves the timestamp listing per the override order.
func (c *StageContent) EffectiveTimestamps() string {
	if c.CustomTimestamps != "" {
		return c.CustomTimestamps
	}
	return c.Timestamps
}

// EffectiveThumbnail resolves the thumbnail URL per the override order.
func (c *StageContent) EffectiveThumbnail() string {
	if c.SelectedThumbnail != "" {
		return c.SelectedThumbnail
	}
	if len(c.Thumbnails) > 0 {
		return c.Thumbnails[0]
	}
	return ""
}
