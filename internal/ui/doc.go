// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks the upload workflow step by step: pick a title among the
// generated candidates, review the description and chapters, choose a
// thumbnail, then step through the three preview stages (content review,
// settings, final preview) and publish. The all-in-one shortcut runs every
// remaining generation step and jumps straight to the final preview.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the UploadEngine, providing
// non-blocking status reporting during long operations.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
