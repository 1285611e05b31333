package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the upload workflow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: upload engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tubeflow-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if _, err := r.engine.Restore(ctx); err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.engine, cmd.StringArg("path"))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
