package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubeflow/internal/formatter"
	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Preview fetches the authoritative current record and renders it.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	record, err := r.engine.FetchPreview(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(record, true)
	}

	var rendered []byte
	if cmd.Bool("markdown") {
		rendered = formatter.MetadataToMarkdown(record)
	} else {
		rendered = formatter.MetadataToText(record)
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteToFile(output, rendered); err != nil {
			return err
		}
		r.logger.Info("preview exported", "path", output)
		return r.writePlain("✓ Preview written to %s\n", output)
	}

	return r.writePlain("%s", string(rendered))
}

// renderPreviewText renders a record for terminal display.
func (r *Runner) renderPreviewText(record *models.VideoRecord) string {
	return string(formatter.MetadataToText(record))
}

// Publish applies privacy (and optionally a playlist), then publishes to YouTube.
//
// Requires explicit confirmation via --yes; without it nothing is sent.
func (r *Runner) Publish(ctx context.Context, cmd *cli.Command) error {
	if privacy := cmd.String("privacy"); privacy != "" {
		if err := r.engine.SetPrivacy(models.Privacy(privacy)); err != nil {
			return err
		}
	}
	if playlist := cmd.String("playlist"); playlist != "" {
		if err := r.engine.ApplyPlaylist(ctx, playlist); err != nil {
			return err
		}
	}

	if !cmd.Bool("yes") {
		r.writePlain("Publishing requires confirmation. Re-run with --yes to proceed.\n")
		return fmt.Errorf("%w: confirmation required", shared.ErrPublishAborted)
	}

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("🚀 %s\n", update.Message)
		}
	}()

	receipt, err := r.engine.Publish(ctx, true, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Published!")
	if receipt.VideoURL != "" {
		r.writePlain("URL: %s\n", receipt.VideoURL)
	}
	if receipt.Message != "" {
		r.writePlain("%s\n", receipt.Message)
	}
	return nil
}

// Download fetches the rendered video and writes it to the output path.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	err := r.engine.Download(ctx, output, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.logger.Info("video downloaded", "path", output)
	return r.writePlain("✓ Saved to %s\n", output)
}
