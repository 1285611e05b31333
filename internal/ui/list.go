package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tubeflow/internal/models"
)

var (
	_ list.Item = candidateItem{}
	_ list.Item = thumbnailItem{}
	_ list.Item = playlistItem{}
)

// candidateItem wraps a generated title candidate to implement [list.Item].
type candidateItem struct {
	title string
	index int
}

func (i candidateItem) FilterValue() string { return i.title }
func (i candidateItem) Title() string       { return i.title }
func (i candidateItem) Description() string {
	return fmt.Sprintf("candidate #%d", i.index+1)
}

// thumbnailItem wraps a generated thumbnail URL to implement [list.Item].
type thumbnailItem struct {
	url   string
	index int
}

func (i thumbnailItem) FilterValue() string { return i.url }
func (i thumbnailItem) Title() string       { return fmt.Sprintf("Thumbnail #%d", i.index+1) }
func (i thumbnailItem) Description() string { return i.url }

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Title }
func (i playlistItem) Title() string       { return i.playlist.Title }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d videos", i.playlist.ItemCount)
}
