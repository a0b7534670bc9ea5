package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"runbox/internal/ui"
)

// EnsureImageStage makes sure the configured image is available locally,
// pulling it under a liveness spinner when it's missing or when an upgrade
// was requested.
type EnsureImageStage struct {
	console *ui.Console
}

// NewEnsureImageStage creates a new ensure-image stage instance.
func NewEnsureImageStage(console *ui.Console) *EnsureImageStage {
	return &EnsureImageStage{console: console}
}

// Name returns the name of the stage.
func (s *EnsureImageStage) Name() string {
	return "ensure-image"
}

// Execute checks local image presence and pulls when needed.
func (s *EnsureImageStage) Execute(ctx context.Context, run *RunContext) error {
	image := run.Profile.Image

	has, err := run.Runtime.HasImage(ctx, image)
	if err != nil {
		return fmt.Errorf("image presence check failed: %w", err)
	}

	forced := run.Upgrade || run.Profile.AlwaysPull
	if has && !forced {
		slog.Info("Image present locally, skipping pull", "image", image)
		return nil
	}

	if !run.Quiet {
		if forced && has {
			s.console.PrintInfo(fmt.Sprintf("Upgrading image %s", image))
		} else {
			s.console.PrintInfo(fmt.Sprintf("Image %s not found locally", image))
		}
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Pulling %s", image), run.Profile.SpinnerInterval)
	if err := spinner.Run(func() error {
		return run.Runtime.PullImage(ctx, image)
	}); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", image, err)
	}

	if !run.Quiet {
		s.console.PrintSuccess(fmt.Sprintf("Pulled %s", image))
	}

	// Best effort: a failed state write must never fail the run.
	record := &PullRecord{
		RunID:    run.RunID,
		Image:    image,
		PulledAt: time.Now(),
		Forced:   forced,
	}
	if err := saveState(record); err != nil {
		slog.Warn("Failed to record pull in state file", "error", err)
	}

	return nil
}
