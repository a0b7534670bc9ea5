package app

import (
	"strings"
	"testing"
)

func TestRuntimeFactory_GetRuntime(t *testing.T) {
	factory := NewRuntimeFactory()

	tests := []struct {
		name        string
		runtimeName string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Unsupported runtime",
			runtimeName: "podman",
			expectError: true,
			errorMsg:    "unsupported container runtime: podman",
		},
		{
			name:        "Empty runtime name",
			runtimeName: "",
			expectError: true,
			errorMsg:    "unsupported container runtime:",
		},
		{
			name:        "Invalid runtime name",
			runtimeName: "invalid-runtime",
			expectError: true,
			errorMsg:    "unsupported container runtime: invalid-runtime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := factory.GetRuntime(tt.runtimeName)

			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error message to contain %q, got: %s", tt.errorMsg, err.Error())
			}
			if rt != nil {
				t.Errorf("Expected runtime to be nil on error, got: %T", rt)
			}
		})
	}
}

func TestRuntimeFactory_GetRuntime_Docker(t *testing.T) {
	factory := NewRuntimeFactory()

	// Succeeds when a Docker daemon is reachable; otherwise the error must
	// carry the factory's context.
	rt, err := factory.GetRuntime("docker")
	if err != nil {
		if !strings.Contains(err.Error(), "failed to create Docker runtime") {
			t.Errorf("Unexpected error format: %s", err)
		}
		return
	}
	if rt == nil {
		t.Error("Expected runtime to be non-nil on success")
	}
}
