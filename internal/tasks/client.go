package tasks

import (
	"context"
	"sync"
)

// State is a point-in-time snapshot of a task [Client].
//
// Loading and Err are mutually exclusive: a new invocation clears the
// previous error before the call starts.
type State[Out any] struct {
	Loading   bool
	Err       error
	Result    Out
	HasResult bool
}

// Client wraps one remote capability with observable invocation state.
//
// Each Invoke bumps a generation counter; a call that resolves after a newer
// invocation has started is discarded instead of overwriting fresher state.
// Without this, a slow stale response could clobber the result of a newer
// request.
type Client[In, Out any] struct {
	mu      sync.Mutex
	gen     uint64
	loading bool
	err     error
	result  Out
	has     bool
	fn      func(context.Context, In) (Out, error)
}

// NewClient creates a task client for the given invoke function.
func NewClient[In, Out any](fn func(context.Context, In) (Out, error)) *Client[In, Out] {
	return &Client[In, Out]{fn: fn}
}

// Invoke runs the capability.
//
// The result and error are returned to the direct caller regardless of
// staleness; only the shared observable state is generation-guarded. On
// failure the last successful result is left in place.
func (c *Client[In, Out]) Invoke(ctx context.Context, in In) (Out, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	out, err := c.fn(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer invocation superseded this one; its resolution wins.
		return out, err
	}

	c.loading = false
	if err != nil {
		c.err = err
	} else {
		c.result = out
		c.has = true
		c.err = nil
	}
	return out, err
}

// Snapshot returns the current observable state.
func (c *Client[In, Out]) Snapshot() State[Out] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[Out]{
		Loading:   c.loading,
		Err:       c.err,
		Result:    c.result,
		HasResult: c.has,
	}
}

// Loading reports whether an invocation is in flight.
func (c *Client[In, Out]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
