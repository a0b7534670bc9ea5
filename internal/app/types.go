package app

import (
	"context"

	"runbox/pkg/profile"
	"runbox/pkg/runtime"
)

// Stage represents a single stage in the runbox run workflow.
// Each stage implements this interface to provide a name and execution logic.
type Stage interface {
	Name() string
	Execute(ctx context.Context, run *RunContext) error
}

// RunContext carries the state of a single runbox invocation through the
// stages: resolved profile, runtime backend, forwarded arguments, and the
// container's exit code once the run stage has completed.
type RunContext struct {
	RunID   string
	Profile *profile.Profile
	Runtime runtime.ContainerRuntime
	Args    []string
	Upgrade bool
	Quiet   bool

	// ExitCode is the wrapped container's exit code, valid after the run
	// stage finishes. The wrapper process mirrors it.
	ExitCode int
}
