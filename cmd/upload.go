package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Upload sends a raw video file to the backend and starts a new session.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: video file path is required", shared.ErrMissingArgument)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: cannot read %s: %v", shared.ErrInvalidInput, path, err)
	}

	r.logger.Info("starting upload", "path", path)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📤 %s\n", update.Message)
		}
	}()

	session, err := r.engine.Upload(ctx, path, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n✓ Upload accepted\n")
	r.writePlain("Session: %s\n", session.ID)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'tubeflow generate title' to generate title candidates\n")
	r.writePlain("2. Or run 'tubeflow auto' to generate everything at once\n")
	return nil
}

// Auto runs the all-in-one fast path: every generation step at once, then the
// final preview. With a path argument it uploads first.
func (r *Runner) Auto(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.PhaseUpload:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.PhaseThumbnails:
				r.writePlain("🖼  %s\n", update.Message)
			default:
				r.writePlain("⚙  %s\n", update.Message)
			}
		}
	}()
	defer close(progressCh)

	if path != "" {
		if _, err := r.engine.Upload(ctx, path, progressCh); err != nil {
			return err
		}
	} else if _, err := r.engine.Restore(ctx); err != nil {
		return err
	}

	result, err := r.engine.AllInOne(ctx, progressCh)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("All-in-one complete")
	r.writePlain("%s\n", result.Ops.Summary())
	for _, opErr := range result.Ops.Failed {
		r.writePlain("  ✗ %v\n", opErr)
	}

	if result.Preview != nil {
		r.writePlain("\n")
		r.writePlain("%s", r.renderPreviewText(result.Preview))
	}

	r.writePlainln("Run 'tubeflow publish --yes' when you are happy with the preview")
	return nil
}
