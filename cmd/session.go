package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SessionShow prints the persisted session, if any.
func (r *Runner) SessionShow(ctx context.Context, cmd *cli.Command) error {
	session, err := r.engine.Restore(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return r.writePlain("No active session. Run 'tubeflow upload <path>' to start one.\n")
	}
	return r.writeJSON(session, cmd.Bool("pretty"))
}

// SessionReset clears the persisted session and all workflow state.
func (r *Runner) SessionReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.engine.Reset(ctx); err != nil {
		return err
	}
	r.logger.Info("session cleared")
	return r.writePlain("✓ Session cleared\n")
}
