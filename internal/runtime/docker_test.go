package runtime

import (
	"strings"
	"testing"
)

func TestNewDockerRuntime_RequiresDockerDaemon(t *testing.T) {
	// Succeeds when a Docker daemon is reachable; otherwise we're exercising
	// the error handling path and its message format.
	rt, err := NewDockerRuntime()
	if err != nil {
		msg := err.Error()
		if msg == "" {
			t.Error("Error message should not be empty")
		}
		if !strings.HasPrefix(msg, "failed to create Docker client") &&
			!strings.HasPrefix(msg, "failed to connect to Docker daemon") {
			t.Errorf("Unexpected error format: %s", msg)
		}
		return
	}

	if rt == nil {
		t.Fatal("NewDockerRuntime() returned nil runtime without error")
	}
	if rt.client == nil {
		t.Error("DockerRuntime.client is nil")
	}
	if rt.stdout == nil || rt.stderr == nil || rt.stdin == nil {
		t.Error("DockerRuntime stdio streams are not initialized")
	}
}
