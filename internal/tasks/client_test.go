package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClient(t *testing.T) {
	t.Run("Records Result On Success", func(t *testing.T) {
		c := NewClient(func(ctx context.Context, in int) (int, error) {
			return in * 2, nil
		})

		out, err := c.Invoke(context.Background(), 21)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != 42 {
			t.Errorf("expected 42, got %d", out)
		}

		snap := c.Snapshot()
		if snap.Loading || snap.Err != nil || !snap.HasResult || snap.Result != 42 {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
	})

	t.Run("Keeps Last Result On Failure", func(t *testing.T) {
		fail := false
		boom := errors.New("boom")
		c := NewClient(func(ctx context.Context, in string) (string, error) {
			if fail {
				return "", boom
			}
			return in, nil
		})

		c.Invoke(context.Background(), "ok")
		fail = true
		if _, err := c.Invoke(context.Background(), "bad"); err == nil {
			t.Fatal("expected error")
		}

		snap := c.Snapshot()
		if snap.Err != boom {
			t.Errorf("expected boom error, got %v", snap.Err)
		}
		if snap.Result != "ok" || !snap.HasResult {
			t.Errorf("expected last successful result retained, got %+v", snap)
		}
	})

	t.Run("New Invocation Clears Previous Error", func(t *testing.T) {
		fail := true
		c := NewClient(func(ctx context.Context, in string) (string, error) {
			if fail {
				return "", errors.New("boom")
			}
			return in, nil
		})

		c.Invoke(context.Background(), "bad")
		fail = false
		c.Invoke(context.Background(), "ok")

		if snap := c.Snapshot(); snap.Err != nil {
			t.Errorf("expected error cleared, got %v", snap.Err)
		}
	})

	t.Run("Stale Response Does Not Clobber Newer State", func(t *testing.T) {
		release := make(chan struct{})
		c := NewClient(func(ctx context.Context, in string) (string, error) {
			if in == "slow" {
				<-release
			}
			return in, nil
		})

		done := make(chan string)
		go func() {
			out, _ := c.Invoke(context.Background(), "slow")
			done <- out
		}()

		for !c.Loading() {
			time.Sleep(time.Millisecond)
		}

		if out, err := c.Invoke(context.Background(), "fast"); err != nil || out != "fast" {
			t.Fatalf("unexpected second invocation result: %q, %v", out, err)
		}

		close(release)
		if out := <-done; out != "slow" {
			t.Fatalf("direct caller should still receive its own result, got %q", out)
		}

		snap := c.Snapshot()
		if snap.Result != "fast" {
			t.Errorf("expected newer result to win, got %q", snap.Result)
		}
		if snap.Loading {
			t.Error("expected loading cleared by newer invocation")
		}
	})
}

func TestBatchResult(t *testing.T) {
	t.Run("Summary Without Failures", func(t *testing.T) {
		b := BatchResult[string]{Succeeded: []string{"a", "b"}}
		if got := b.Summary(); got != "2/2 completed" {
			t.Errorf("unexpected summary: %s", got)
		}
		if b.Partial() || b.AllFailed() {
			t.Error("expected clean success")
		}
	})

	t.Run("Summary With Partial Failure", func(t *testing.T) {
		b := BatchResult[string]{Succeeded: []string{"a"}, Failed: []error{errors.New("x"), errors.New("y")}}
		if got := b.Summary(); got != "1/3 completed, 2 failed" {
			t.Errorf("unexpected summary: %s", got)
		}
		if !b.Partial() {
			t.Error("expected partial")
		}
	})

	t.Run("All Failed", func(t *testing.T) {
		b := BatchResult[string]{Failed: []error{errors.New("x")}}
		if !b.AllFailed() {
			t.Error("expected all failed")
		}
	})
}
