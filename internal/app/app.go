package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"runbox/internal/parser"
	"runbox/internal/ui"
	"runbox/pkg/profile"
)

// RunParams holds the CLI-level inputs for a runbox invocation.
type RunParams struct {
	ProfilePath string
	Image       string // overrides the profile's image when non-empty
	Upgrade     bool
	Quiet       bool
	Args        []string
}

// Run orchestrates the complete wrapper workflow: resolve the profile, make
// sure the image is present (pulling under a spinner when it isn't), then run
// the container forwarding the trailing arguments. Returns the container's
// exit code.
func Run(ctx context.Context, params RunParams) (int, error) {
	run, err := prepare(params)
	if err != nil {
		return 1, err
	}

	slog.Info("Starting runbox run", "runId", run.RunID, "image", run.Profile.Image, "args", run.Args)

	for _, stage := range buildStages(ui.NewConsole()) {
		if err := stage.Execute(ctx, run); err != nil {
			return 1, fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}
	}

	slog.Info("Runbox run completed", "runId", run.RunID, "exitCode", run.ExitCode)
	return run.ExitCode, nil
}

// Pull makes sure the image is available locally without running anything.
// With force set the image is re-pulled even when present.
func Pull(ctx context.Context, params RunParams, force bool) error {
	run, err := prepare(params)
	if err != nil {
		return err
	}
	run.Upgrade = force

	slog.Info("Starting runbox pull", "runId", run.RunID, "image", run.Profile.Image, "force", force)

	stage := NewEnsureImageStage(ui.NewConsole())
	if err := stage.Execute(ctx, run); err != nil {
		return fmt.Errorf("%s stage failed: %w", stage.Name(), err)
	}
	return nil
}

// Status reports the configured image, its local presence, and the last
// recorded pull.
func Status(ctx context.Context, params RunParams) error {
	console := ui.NewConsole()

	prof, err := resolveProfile(params)
	if err != nil {
		return err
	}
	console.PrintInfo(fmt.Sprintf("Image:   %s", prof.Image))
	console.PrintInfo(fmt.Sprintf("Runtime: %s", prof.Runtime))

	rt, err := NewRuntimeFactory().GetRuntime(prof.Runtime)
	if err != nil {
		console.PrintWarning(fmt.Sprintf("Runtime unavailable: %s", err))
	} else {
		has, err := rt.HasImage(ctx, prof.Image)
		switch {
		case err != nil:
			console.PrintWarning(fmt.Sprintf("Image check failed: %s", err))
		case has:
			console.PrintSuccess("Image present locally")
		default:
			console.PrintWarning("Image not present locally (run 'runbox pull')")
		}
	}

	record, err := loadState()
	if err != nil {
		console.PrintWarning(fmt.Sprintf("State file unreadable: %s", err))
		return nil
	}
	if record == nil {
		console.PrintInfo("No pull recorded yet")
		return nil
	}
	console.PrintInfo(fmt.Sprintf("Last pull: %s at %s", record.Image, record.PulledAt.Format("2006-01-02 15:04:05")))
	return nil
}

// ResetState clears the recorded pull state.
func ResetState() error {
	return removeStateFile()
}

// prepare resolves the profile, builds the runtime backend, and assembles a
// fresh run context with a new run ID.
func prepare(params RunParams) (*RunContext, error) {
	prof, err := resolveProfile(params)
	if err != nil {
		return nil, err
	}

	rt, err := NewRuntimeFactory().GetRuntime(prof.Runtime)
	if err != nil {
		return nil, fmt.Errorf("runtime initialization failed: %w", err)
	}

	return &RunContext{
		RunID:   uuid.New().String(),
		Profile: prof,
		Runtime: rt,
		Args:    params.Args,
		Upgrade: params.Upgrade,
		Quiet:   params.Quiet,
	}, nil
}

func resolveProfile(params RunParams) (*profile.Profile, error) {
	prof, err := parser.Parse(params.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("profile resolution failed: %w", err)
	}
	if params.Image != "" {
		prof.Image = params.Image
	}
	return prof, nil
}

// buildStages returns the ordered stages of the run workflow.
func buildStages(console *ui.Console) []Stage {
	return []Stage{
		NewEnsureImageStage(console),
		NewRunStage(),
	}
}
