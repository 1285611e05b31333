package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/tasks"
	"github.com/desertthunder/tubeflow/internal/workflow"
	"github.com/urfave/cli/v3"
)

// Generate runs AI generation for one content step and prints the result.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	stepName := cmd.StringArg("step")
	if stepName == "" {
		return fmt.Errorf("%w: step name is required", shared.ErrMissingArgument)
	}
	step, err := workflow.ParseStep(stepName)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	requirements := cmd.String("requirements")

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("⚙  %s\n", update.Message)
		}
	}()

	if requirements != "" {
		err = r.engine.Regenerate(ctx, step, requirements, progressCh)
	} else {
		err = r.engine.Generate(ctx, step, progressCh)
	}
	close(progressCh)

	if err != nil {
		return err
	}

	content := r.engine.Content()

	if cmd.Bool("json") {
		switch step {
		case workflow.StepTitle:
			return r.writeJSON(content.Titles, true)
		case workflow.StepDescription:
			return r.writeJSON(map[string]string{"description": content.Description}, true)
		case workflow.StepTimestamps:
			return r.writeJSON(map[string]string{"timestamps": content.Timestamps}, true)
		case workflow.StepThumbnail:
			return r.writeJSON(content.Thumbnails, true)
		}
	}

	switch step {
	case workflow.StepTitle:
		r.writePlain("\nTitle candidates:\n")
		for i, title := range content.Titles {
			r.writePlain("  %d. %s\n", i+1, title)
		}
		r.writePlainln("Select one with 'tubeflow pick title -n <number>' or edit your own with 'tubeflow edit title'")
	case workflow.StepDescription:
		r.writePlain("\n%s\n", content.Description)
	case workflow.StepTimestamps:
		r.writePlain("\n%s\n", content.Timestamps)
	case workflow.StepThumbnail:
		r.writePlain("\nThumbnails:\n")
		for i, url := range content.Thumbnails {
			r.writePlain("  %d. %s\n", i+1, url)
		}
		r.writePlainln("Select one with 'tubeflow pick thumbnail -n <number>'")
	}
	return nil
}

// Pick records a selection among the candidates generated in this run.
//
// Candidate sets live in memory for the duration of one invocation; picking
// across invocations would silently bind a different generation, so the
// command fails loudly instead. The TUI keeps candidates alive for the whole
// workflow.
func (r *Runner) Pick(ctx context.Context, cmd *cli.Command) error {
	stepName := cmd.StringArg("step")
	step, err := workflow.ParseStep(stepName)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	number := cmd.Int("number")

	content := r.engine.Content()

	switch step {
	case workflow.StepTitle:
		if len(content.Titles) == 0 {
			return fmt.Errorf("%w: no title candidates in memory; use 'tubeflow tui' for interactive selection or 'tubeflow edit title --value ...'", shared.ErrInvalidInput)
		}
		if number < 1 || int(number) > len(content.Titles) {
			return fmt.Errorf("%w: candidate number must be between 1 and %d", shared.ErrInvalidInput, len(content.Titles))
		}
		chosen := content.Titles[number-1]
		r.engine.SelectTitle(chosen)
		if err := r.engine.SaveTitle(ctx, chosen); err != nil {
			return err
		}
		return r.writePlain("✓ Title saved: %s\n", chosen)
	case workflow.StepThumbnail:
		if len(content.Thumbnails) == 0 {
			return fmt.Errorf("%w: no thumbnails in memory; use 'tubeflow tui' for interactive selection", shared.ErrInvalidInput)
		}
		if number < 1 || int(number) > len(content.Thumbnails) {
			return fmt.Errorf("%w: thumbnail number must be between 1 and %d", shared.ErrInvalidInput, len(content.Thumbnails))
		}
		r.engine.SelectThumbnail(content.Thumbnails[number-1])
		return r.writePlain("✓ Thumbnail selected: %s\n", content.Thumbnails[number-1])
	default:
		return fmt.Errorf("%w: only title and thumbnail have candidate sets", shared.ErrInvalidInput)
	}
}

// Edit saves a manual override for a content step.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	stepName := cmd.StringArg("step")
	step, err := workflow.ParseStep(stepName)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	value := cmd.String("value")
	if file := cmd.String("file"); file != "" {
		if value != "" {
			return fmt.Errorf("%w: cannot specify both --value and --file", shared.ErrInvalidFlag)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("%w: cannot read %s: %v", shared.ErrInvalidInput, file, err)
		}
		value = string(data)
	}
	if value == "" {
		return fmt.Errorf("%w: provide the edited content via --value or --file", shared.ErrMissingArgument)
	}

	switch step {
	case workflow.StepTitle:
		if err := r.engine.SaveTitle(ctx, value); err != nil {
			return err
		}
	case workflow.StepDescription:
		if err := r.engine.SaveDescription(ctx, value, cmd.String("template")); err != nil {
			return err
		}
	case workflow.StepTimestamps:
		if err := r.engine.SaveTimestamps(ctx, value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s is not editable", shared.ErrInvalidInput, step)
	}

	r.logger.Info("saved edit", "step", step.String())
	return r.writePlain("✓ %s saved\n", step)
}
