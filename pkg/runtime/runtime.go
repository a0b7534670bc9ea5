package runtime

import "context"

// RunOptions defines the parameters for running a foreground container.
type RunOptions struct {
	Image            string
	Command          []string
	VolumeMounts     map[string]string
	EnvVars          map[string]string
	WorkingDirectory string

	// Interactive attaches the caller's stdin and allocates a TTY so the
	// wrapped command can be driven interactively.
	Interactive bool
}

// ContainerRuntime defines the contract for container operations.
type ContainerRuntime interface {
	// HasImage reports whether the image is present locally. A missing image
	// is not an error.
	HasImage(ctx context.Context, image string) (bool, error)

	// PullImage pulls the image from its registry.
	PullImage(ctx context.Context, image string) error

	// RunContainer runs the image as a foreground container, streaming its
	// output to the caller's stdio, and returns the container's exit code
	// once it terminates. The container is removed before returning.
	RunContainer(ctx context.Context, opts RunOptions) (int, error)
}
