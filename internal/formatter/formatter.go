// package formatter renders upload metadata for display and file export (Markdown, plain text)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/tubeflow/internal/models"
)

// MetadataToMarkdown renders a video record as a Markdown document.
func MetadataToMarkdown(record *models.VideoRecord) []byte {
	var buf bytes.Buffer

	title := record.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	if record.Status != "" {
		fmt.Fprintf(&buf, "**Status:** %s\n\n", record.Status)
	}
	fmt.Fprintf(&buf, "**Privacy:** %s\n\n", record.Privacy)
	if record.PlaylistID != "" {
		fmt.Fprintf(&buf, "**Playlist:** %s\n\n", record.PlaylistID)
	}
	if record.ThumbnailURL != "" {
		fmt.Fprintf(&buf, "![thumbnail](%s)\n\n", record.ThumbnailURL)
	}
	if record.Description != "" {
		fmt.Fprintf(&buf, "## Description\n\n%s\n\n", record.Description)
	}
	if record.Timestamps != "" {
		fmt.Fprintf(&buf, "## Chapters\n\n```\n%s\n```\n", NormalizeTimestamps(record.Timestamps))
	}

	return buf.Bytes()
}

// MetadataToText renders a video record as plain text for terminal output.
func MetadataToText(record *models.VideoRecord) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Title:       %s\n", record.Title)
	fmt.Fprintf(&buf, "Privacy:     %s\n", record.Privacy)
	if record.PlaylistID != "" {
		fmt.Fprintf(&buf, "Playlist:    %s\n", record.PlaylistID)
	}
	if record.ThumbnailURL != "" {
		fmt.Fprintf(&buf, "Thumbnail:   %s\n", record.ThumbnailURL)
	}
	if record.Status != "" {
		fmt.Fprintf(&buf, "Status:      %s\n", record.Status)
	}
	if record.Description != "" {
		fmt.Fprintf(&buf, "\nDescription:\n%s\n", record.Description)
	}
	if record.Timestamps != "" {
		fmt.Fprintf(&buf, "\nChapters:\n%s\n", NormalizeTimestamps(record.Timestamps))
	}

	return buf.Bytes()
}

// NormalizeTimestamps trims surrounding whitespace from each chapter line and
// drops blank lines so exported listings are uniform.
func NormalizeTimestamps(timestamps string) string {
	lines := strings.Split(timestamps, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// WriteToFile writes rendered metadata to the given path.
func WriteToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
