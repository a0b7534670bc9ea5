package app

import (
	"fmt"

	internalruntime "runbox/internal/runtime"
	"runbox/pkg/runtime"
)

// RuntimeFactory provides container runtime implementations based on string
// identifiers from the profile. This decouples the orchestrator from concrete
// runtime backends so alternatives can slot in alongside Docker.
type RuntimeFactory struct{}

// NewRuntimeFactory creates a new instance of RuntimeFactory.
func NewRuntimeFactory() *RuntimeFactory {
	return &RuntimeFactory{}
}

// GetRuntime returns the container runtime implementation matching the
// profile's runtime name.
func (f *RuntimeFactory) GetRuntime(runtimeName string) (runtime.ContainerRuntime, error) {
	switch runtimeName {
	case "docker":
		dockerRuntime, err := internalruntime.NewDockerRuntime()
		if err != nil {
			return nil, fmt.Errorf("failed to create Docker runtime: %w", err)
		}
		return dockerRuntime, nil
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", runtimeName)
	}
}
