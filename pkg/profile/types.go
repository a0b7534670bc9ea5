package profile

import "time"

// Default values applied by the parser when a field is absent from the
// profile file and no RUNBOX_ environment override is set.
const (
	DefaultImage            = "ghcr.io/runbox/toolbox:latest"
	DefaultRuntime          = "docker"
	DefaultWorkdir          = "/workspace"
	DefaultCredentialsDir   = "~/.aws"
	DefaultCredentialsMount = "/root/.aws"
	DefaultSpinnerInterval  = 500 * time.Millisecond
)

// Profile is the root object that holds the configuration for a runbox
// invocation. It's populated from an optional runbox.yaml file; every field
// has a built-in default so running without a profile is fully supported.
type Profile struct {
	// Image is the container image reference the wrapper runs.
	Image string `mapstructure:"image" validate:"required"`

	// Runtime selects the container runtime backend.
	Runtime string `mapstructure:"runtime" validate:"required,oneof=docker"`

	// Workdir is the path inside the container where the caller's working
	// directory is mounted and where the wrapped command executes.
	Workdir string `mapstructure:"workdir" validate:"required,startswith=/"`

	// CredentialsDir is the host directory mounted read-only into the
	// container for the wrapped application's credentials. A leading ~ is
	// expanded to the caller's home directory.
	CredentialsDir string `mapstructure:"credentialsDir" validate:"required"`

	// CredentialsMount is the container path the credentials directory is
	// mounted at.
	CredentialsMount string `mapstructure:"credentialsMount" validate:"required,startswith=/"`

	// AlwaysPull forces a pull on every run instead of only when the image
	// is missing locally.
	AlwaysPull bool `mapstructure:"alwaysPull"`

	// Env holds extra environment variables injected into the container.
	Env map[string]string `mapstructure:"env,omitempty"`

	// SpinnerInterval is the liveness indicator's frame interval.
	SpinnerInterval time.Duration `mapstructure:"spinnerInterval" validate:"gte=0"`
}
