package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"runbox/pkg/runtime"
)

// RunStage runs the configured image as a foreground container with the
// working directory and credentials directory bind-mounted, forwarding the
// invocation's trailing arguments as the container command.
type RunStage struct{}

// NewRunStage creates a new run stage instance.
func NewRunStage() *RunStage {
	return &RunStage{}
}

// Name returns the name of the stage.
func (s *RunStage) Name() string {
	return "run"
}

// Execute assembles the run options and blocks until the container exits.
// The container's exit code is stored on the run context; a non-zero exit
// code is not an error here, the wrapper mirrors it instead.
func (s *RunStage) Execute(ctx context.Context, run *RunContext) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	mounts := map[string]string{
		absWorkDir: run.Profile.Workdir,
	}

	credsDir, err := expandHome(run.Profile.CredentialsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve credentials directory: %w", err)
	}
	if _, err := os.Stat(credsDir); os.IsNotExist(err) {
		// No credentials is not fatal; the wrapped command may not need them.
		slog.Warn("Credentials directory not found, running without it", "path", credsDir)
	} else {
		mounts[credsDir] = run.Profile.CredentialsMount
	}

	opts := runtime.RunOptions{
		Image:            run.Profile.Image,
		Command:          run.Args,
		VolumeMounts:     mounts,
		EnvVars:          run.Profile.Env,
		WorkingDirectory: run.Profile.Workdir,
		Interactive:      stdinIsTerminal(),
	}

	exitCode, err := run.Runtime.RunContainer(ctx, opts)
	if err != nil {
		return fmt.Errorf("container execution failed: %w", err)
	}

	run.ExitCode = exitCode
	slog.Info("Run stage completed", "image", opts.Image, "exitCode", exitCode)
	return nil
}

// expandHome resolves a leading ~ to the caller's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

func stdinIsTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
