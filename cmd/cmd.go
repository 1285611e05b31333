// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the YouTube OAuth flow and credential management.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in with YouTube via browser OAuth flow",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Remove the cached credential and clear the active session",
				Action: r.AuthLogout,
			},
		},
	}
}

// uploadCommand starts a new workflow by uploading a raw video file.
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a raw video file and start a new session",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Upload,
	}
}

// generateCommand runs AI generation for a single content step.
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate content for a step (title, description, timestamps, thumbnail)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "step"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "requirements",
				Aliases: []string{"r"},
				Usage:   "Free-text requirements for constraint-guided regeneration (title and description only)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output generated content as JSON",
			},
		},
		Action: r.Generate,
	}
}

// pickCommand records a selection among generated candidates.
func pickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Pick a generated candidate by number",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "step"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "number",
				Aliases:  []string{"n"},
				Usage:    "1-based candidate number",
				Required: true,
			},
		},
		Action: r.Pick,
	}
}

// editCommand saves a manual override for a content step.
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Save an edited value for a step (title, description, timestamps)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "step"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "value",
				Usage: "The edited content",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the edited content from a file",
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "Description template (description step only)",
			},
		},
		Action: r.Edit,
	}
}

// autoCommand runs the all-in-one fast path.
func autoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "auto",
		Aliases: []string{"all-in-one"},
		Usage:   "Run every generation step at once and jump to the final preview",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Auto,
	}
}

// previewCommand fetches and renders the current video record.
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Fetch and display the current video preview",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Render as Markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write rendered preview to a file",
			},
		},
		Action: r.Preview,
	}
}

// publishCommand performs the terminal publish sequence.
func publishCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Set privacy and publish the video to YouTube",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Confirm publishing without prompting",
			},
			&cli.StringFlag{
				Name:  "privacy",
				Usage: "Privacy status (public, unlisted, private)",
			},
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "Playlist ID to assign before publishing",
			},
		},
		Action: r.Publish,
	}
}

// downloadCommand fetches the rendered video file.
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download the rendered video",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file path",
				Required: true,
			},
		},
		Action: r.Download,
	}
}

// sessionCommand inspects and manages the persisted upload session.
func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Inspect and manage the active upload session",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the persisted session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SessionShow,
			},
			{
				Name:   "reset",
				Usage:  "Clear the persisted session and start fresh",
				Action: r.SessionReset,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive workflow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive upload workflow",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.TUI,
	}
}
