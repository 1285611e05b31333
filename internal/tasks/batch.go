package tasks

import "fmt"

// BatchResult aggregates an operation fanned out into sub-tasks.
//
// Partial failure is a qualified success, not a hard failure: callers can
// render exactly which sub-tasks succeeded and which failed.
type BatchResult[T any] struct {
	Succeeded []T
	Failed    []error
}

// Total returns the number of sub-tasks in the batch.
func (b BatchResult[T]) Total() int { return len(b.Succeeded) + len(b.Failed) }

// Partial reports whether some sub-tasks failed while others succeeded.
func (b BatchResult[T]) Partial() bool {
	return len(b.Failed) > 0 && len(b.Succeeded) > 0
}

// AllFailed reports whether every sub-task failed.
func (b BatchResult[T]) AllFailed() bool {
	return len(b.Succeeded) == 0 && len(b.Failed) > 0
}

// Summary renders a completed-vs-failed count for display.
func (b BatchResult[T]) Summary() string {
	if len(b.Failed) == 0 {
		return fmt.Sprintf("%d/%d completed", len(b.Succeeded), b.Total())
	}
	return fmt.Sprintf("%d/%d completed, %d failed", len(b.Succeeded), b.Total(), len(b.Failed))
}
