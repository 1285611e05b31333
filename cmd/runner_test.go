package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/shared"
	tu "github.com/desertthunder/tubeflow/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(backend *tu.MockBackend) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  shared.DefaultConfig(),
		Backend: backend,
		Store:   &tu.MemorySessionStore{},
		Output:  output,
	})
	return runner, output
}

func runApp(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "tubeflow", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"tubeflow"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("With All Dependencies Provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		output := &bytes.Buffer{}
		backend := &tu.MockBackend{}

		runner := NewRunner(RunnerOpts{Config: config, Backend: backend, Output: output})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
		if runner.engine == nil {
			t.Error("expected engine to be constructed")
		}
	})

	t.Run("With Nil Config Uses Defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Backend: &tu.MockBackend{}})
		if runner.config == nil {
			t.Error("expected default config")
		}
		if runner.logger == nil {
			t.Error("expected default logger")
		}
	})
}

func TestWriteHelpers(t *testing.T) {
	t.Run("WriteJSON Pretty", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})
		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "\"key\": \"value\"") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("WriteJSON Propagates Writer Failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Backend: &tu.MockBackend{}, Output: &tu.FWriter{}})
		if err := runner.writeJSON("data", false); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("WritePlain Formats", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})
		runner.writePlain("count: %d\n", 3)
		if output.String() != "count: 3\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})
}

func TestUploadCommand(t *testing.T) {
	t.Run("Requires A Path", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "upload")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("Rejects Unknown Steps", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "generate", "render")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Requires A Session", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "generate", "title")
		if !errors.Is(err, shared.ErrMissingSession) {
			t.Errorf("expected ErrMissingSession, got %v", err)
		}
	})
}

func TestPickCommand(t *testing.T) {
	t.Run("Fails Loudly Without Candidates", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "pick", "title", "-n", "1")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Rejects Steps Without Candidate Sets", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "pick", "description", "-n", "1")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestEditCommand(t *testing.T) {
	t.Run("Requires Content", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		err := runApp(t, runner, "edit", "title")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Saves A Title Edit", func(t *testing.T) {
		backend := &tu.MockBackend{}
		runner, output := newTestRunner(backend)

		if _, err := runner.engine.Upload(context.Background(), "video.mp4", nil); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if err := runApp(t, runner, "edit", "title", "--value", "My Title"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.SavedTitle != "My Title" {
			t.Errorf("expected title saved, got %q", backend.SavedTitle)
		}
		if !strings.Contains(output.String(), "title saved") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestPublishCommand(t *testing.T) {
	t.Run("Aborts Without Confirmation", func(t *testing.T) {
		backend := &tu.MockBackend{}
		runner, output := newTestRunner(backend)

		if _, err := runner.engine.Upload(context.Background(), "video.mp4", nil); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		err := runApp(t, runner, "publish")
		if !errors.Is(err, shared.ErrPublishAborted) {
			t.Errorf("expected ErrPublishAborted, got %v", err)
		}
		if backend.PublishCalls != 0 {
			t.Errorf("expected no publish call, got %d", backend.PublishCalls)
		}
		if !strings.Contains(output.String(), "--yes") {
			t.Errorf("expected confirmation hint, got %s", output.String())
		}
	})

	t.Run("Publishes With Confirmation And Privacy Flag", func(t *testing.T) {
		backend := &tu.MockBackend{}
		runner, output := newTestRunner(backend)

		if _, err := runner.engine.Upload(context.Background(), "video.mp4", nil); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if err := runApp(t, runner, "publish", "--yes", "--privacy", "unlisted"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.SavedPrivacy != models.PrivacyUnlisted {
			t.Errorf("expected unlisted privacy, got %s", backend.SavedPrivacy)
		}
		if backend.PublishCalls != 1 {
			t.Errorf("expected one publish call, got %d", backend.PublishCalls)
		}
		if !strings.Contains(output.String(), "Published!") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestSessionCommands(t *testing.T) {
	t.Run("Show Reports Absence", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})
		if err := runApp(t, runner, "session", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "No active session") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("Show Prints The Persisted Session", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})

		if _, err := runner.engine.Upload(context.Background(), "video.mp4", nil); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if err := runApp(t, runner, "session", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "session-1") {
			t.Errorf("expected session id in output, got %s", output.String())
		}
	})

	t.Run("Reset Clears The Session", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})

		if _, err := runner.engine.Upload(context.Background(), "video.mp4", nil); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if err := runApp(t, runner, "session", "reset"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.engine.Session() != nil {
			t.Error("expected session cleared")
		}
		if !strings.Contains(output.String(), "Session cleared") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("Login Requires Credentials", func(t *testing.T) {
		runner, _ := newTestRunner(&tu.MockBackend{})
		runner.config.Auth.ClientID = ""
		runner.config.Auth.ClientSecret = ""

		err := runApp(t, runner, "auth", "login")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Status Reports Signed Out", func(t *testing.T) {
		runner, output := newTestRunner(&tu.MockBackend{})
		if err := runApp(t, runner, "auth", "status"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Not signed in") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}
