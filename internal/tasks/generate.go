package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/desertthunder/tubeflow/internal/workflow"
)

// AllInOneResult contains the outcome of the all-in-one fast path.
//
// Ops records which generation sub-tasks completed and which failed; partial
// failure still lands the workflow on the final preview stage.
type AllInOneResult struct {
	Ops     BatchResult[string]
	Preview *models.VideoRecord
}

// Generate runs plain generation for a content step and stores the result.
//
// Each call produces a fresh candidate set; previous candidates are replaced.
func (e *UploadEngine) Generate(ctx context.Context, step workflow.Step, progress chan<- ProgressUpdate) error {
	return e.generate(ctx, step, "", progress)
}

// Regenerate runs constraint-guided generation for the title or description
// step. It is a distinct remote operation from plain generation and carries
// the user's free-text requirements.
func (e *UploadEngine) Regenerate(ctx context.Context, step workflow.Step, requirements string, progress chan<- ProgressUpdate) error {
	if requirements == "" {
		return fmt.Errorf("%w: requirements are required for regeneration", shared.ErrInvalidInput)
	}
	if step != workflow.StepTitle && step != workflow.StepDescription {
		return fmt.Errorf("%w: %s does not support constraint-guided regeneration", shared.ErrInvalidInput, step)
	}
	return e.generate(ctx, step, requirements, progress)
}

func (e *UploadEngine) generate(ctx context.Context, step workflow.Step, requirements string, progress chan<- ProgressUpdate) error {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return err
	}

	e.sendProgress(progress, generatingUpdate(step))
	in := genInput{sessionID: sessionID, requirements: requirements}

	switch step {
	case workflow.StepTitle:
		titles, err := e.titles.Invoke(ctx, in)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.content.Titles = titles
		e.content.SelectedTitle = ""
		e.mu.Unlock()
	case workflow.StepDescription:
		description, err := e.description.Invoke(ctx, in)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.content.Description = description
		e.mu.Unlock()
	case workflow.StepTimestamps:
		timestamps, err := e.timestamps.Invoke(ctx, in)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.content.Timestamps = timestamps
		e.mu.Unlock()
	case workflow.StepThumbnail:
		if _, err := e.GenerateThumbnails(ctx, progress); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s is not a generation step", shared.ErrInvalidInput, step)
	}

	e.sendProgress(progress, generatedUpdate(step))
	return nil
}

// GenerateThumbnails fans out parallel single-thumbnail requests and
// aggregates the results.
//
// Succeeds with a partial set if at least one of the requests lands; fails
// outright only when every request fails.
func (e *UploadEngine) GenerateThumbnails(ctx context.Context, progress chan<- ProgressUpdate) (BatchResult[string], error) {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return BatchResult[string]{}, err
	}

	e.sendProgress(progress, thumbnailBatchUpdate(0, thumbnailFanout))

	batch, err := e.thumbnails.Invoke(ctx, sessionID)
	if err != nil {
		return batch, err
	}

	e.mu.Lock()
	e.content.Thumbnails = batch.Succeeded
	e.content.SelectedThumbnail = ""
	e.mu.Unlock()

	e.sendProgress(progress, thumbnailBatchUpdate(len(batch.Succeeded), thumbnailFanout))
	return batch, nil
}

// fanoutThumbnails is the invoke function behind the thumbnail task client.
// Sub-requests run concurrently; completion order is irrelevant.
func (e *UploadEngine) fanoutThumbnails(ctx context.Context, sessionID string) (BatchResult[string], error) {
	type outcome struct {
		url string
		err error
	}

	results := make(chan outcome, thumbnailFanout)
	var wg sync.WaitGroup
	for i := 0; i < thumbnailFanout; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url, err := e.backend.GenerateThumbnail(ctx, sessionID)
			results <- outcome{url: url, err: err}
		}()
	}
	wg.Wait()
	close(results)

	var batch BatchResult[string]
	for r := range results {
		if r.err != nil {
			batch.Failed = append(batch.Failed, r.err)
		} else {
			batch.Succeeded = append(batch.Succeeded, r.url)
		}
	}

	if batch.AllFailed() {
		return batch, fmt.Errorf("all %d thumbnail requests failed: %w", thumbnailFanout, batch.Failed[0])
	}
	return batch, nil
}

// AllInOne runs every remaining generation step as one aggregated operation,
// then jumps straight to the final preview stage.
//
// The four generators run concurrently with no ordering guarantee between
// their completions. Partial failure does not block the transition: the
// workflow still lands on preview stage 3 with a completed-vs-failed summary,
// and the fresh preview is fetched exactly once.
func (e *UploadEngine) AllInOne(ctx context.Context, progress chan<- ProgressUpdate) (*AllInOneResult, error) {
	sessionID, err := e.ResolveSessionID(ctx)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, allInOneUpdate(0, 4))

	type op struct {
		name string
		run  func(context.Context) error
	}
	ops := []op{
		{name: "titles", run: func(ctx context.Context) error {
			titles, err := e.titles.Invoke(ctx, genInput{sessionID: sessionID})
			if err != nil {
				return err
			}
			e.mu.Lock()
			e.content.Titles = titles
			e.content.SelectedTitle = ""
			e.mu.Unlock()
			return nil
		}},
		{name: "description", run: func(ctx context.Context) error {
			description, err := e.description.Invoke(ctx, genInput{sessionID: sessionID})
			if err != nil {
				return err
			}
			e.mu.Lock()
			e.content.Description = description
			e.mu.Unlock()
			return nil
		}},
		{name: "timestamps", run: func(ctx context.Context) error {
			timestamps, err := e.timestamps.Invoke(ctx, genInput{sessionID: sessionID})
			if err != nil {
				return err
			}
			e.mu.Lock()
			e.content.Timestamps = timestamps
			e.mu.Unlock()
			return nil
		}},
		{name: "thumbnails", run: func(ctx context.Context) error {
			batch, err := e.thumbnails.Invoke(ctx, sessionID)
			if err != nil {
				return err
			}
			e.mu.Lock()
			e.content.Thumbnails = batch.Succeeded
			e.content.SelectedThumbnail = ""
			e.mu.Unlock()
			return nil
		}},
	}

	type outcome struct {
		name string
		err  error
	}
	results := make(chan outcome, len(ops))
	var wg sync.WaitGroup
	for _, o := range ops {
		wg.Add(1)
		go func(o op) {
			defer wg.Done()
			results <- outcome{name: o.name, err: o.run(ctx)}
		}(o)
	}
	wg.Wait()
	close(results)

	result := &AllInOneResult{}
	done := 0
	for r := range results {
		if r.err != nil {
			result.Ops.Failed = append(result.Ops.Failed, fmt.Errorf("%s: %w", r.name, r.err))
		} else {
			result.Ops.Succeeded = append(result.Ops.Succeeded, r.name)
		}
		done++
		e.sendProgress(progress, allInOneUpdate(done, len(ops)))
	}

	// Force-transition regardless of sub-task failures, then fetch the fresh
	// preview exactly once.
	e.machine.ForceToPreview()

	preview, err := e.FetchPreview(ctx)
	if err != nil {
		e.sendProgress(progress, allInOneDoneUpdate(result.Ops))
		return result, err
	}
	result.Preview = preview

	e.sendProgress(progress, allInOneDoneUpdate(result.Ops))
	return result, nil
}
