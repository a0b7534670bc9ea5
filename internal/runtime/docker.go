package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"runbox/pkg/runtime"
)

// DockerRuntime implements the ContainerRuntime interface using the Docker client.
type DockerRuntime struct {
	client *client.Client

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewDockerRuntime creates a new DockerRuntime instance using client.FromEnv.
func NewDockerRuntime() (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Check if Docker daemon is accessible
	ctx := context.Background()
	if _, err := dockerClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerRuntime{
		client: dockerClient,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}, nil
}

// HasImage reports whether the image exists in the local image store.
func (d *DockerRuntime) HasImage(ctx context.Context, imageName string) (bool, error) {
	_, _, err := d.client.ImageInspectWithRaw(ctx, imageName)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect image %s: %w", imageName, err)
	}
	return true, nil
}

// PullImage pulls a Docker image. The registry's progress stream is consumed
// and discarded; progress feedback is the caller's concern.
func (d *DockerRuntime) PullImage(ctx context.Context, imageName string) error {
	slog.Info("Pulling Docker image", "image", imageName)

	reader, err := d.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	// The pull is not complete until the stream has been drained.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to stream image pull output: %w", err)
	}

	slog.Info("Successfully pulled Docker image", "image", imageName)
	return nil
}

// RunContainer runs a foreground container, streams its output to the
// configured stdio, and returns the container's exit code.
func (d *DockerRuntime) RunContainer(ctx context.Context, opts runtime.RunOptions) (int, error) {
	slog.Info("Running container", "image", opts.Image, "command", opts.Command)

	var mounts []mount.Mount
	for hostPath, containerPath := range opts.VolumeMounts {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: hostPath,
			Target: containerPath,
		})
	}

	var envVars []string
	for key, value := range opts.EnvVars {
		envVars = append(envVars, fmt.Sprintf("%s=%s", key, value))
	}

	containerConfig := &container.Config{
		Image:        opts.Image,
		Cmd:          opts.Command,
		Env:          envVars,
		WorkingDir:   opts.WorkingDirectory,
		Tty:          opts.Interactive,
		OpenStdin:    opts.Interactive,
		StdinOnce:    opts.Interactive,
		AttachStdin:  opts.Interactive,
		AttachStdout: true,
		AttachStderr: true,
	}

	hostConfig := &container.HostConfig{
		Mounts: mounts,
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return -1, fmt.Errorf("failed to create container: %w", err)
	}
	containerID := resp.ID

	defer func() {
		if err := d.client.ContainerRemove(context.Background(), containerID, container.RemoveOptions{Force: true}); err != nil {
			slog.Error("Failed to remove container", "containerID", containerID, "error", err)
		}
	}()

	// Attach before starting so no early output is lost.
	attach, err := d.client.ContainerAttach(ctx, containerID, container.AttachOptions{
		Stream: true,
		Stdin:  opts.Interactive,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		return -1, fmt.Errorf("failed to attach to container: %w", err)
	}
	defer attach.Close()

	if err := d.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return -1, fmt.Errorf("failed to start container: %w", err)
	}

	streamDone := make(chan error, 1)
	go func() {
		var copyErr error
		if opts.Interactive {
			// With a TTY the stream is raw, stdout and stderr multiplexed
			// by the terminal itself.
			_, copyErr = io.Copy(d.stdout, attach.Reader)
		} else {
			_, copyErr = stdcopy.StdCopy(d.stdout, d.stderr, attach.Reader)
		}
		streamDone <- copyErr
	}()

	if opts.Interactive {
		go func() {
			// Best effort: stdin copy ends when the caller's stdin closes
			// or the container stops reading.
			if _, err := io.Copy(attach.Conn, d.stdin); err == nil {
				_ = attach.CloseWrite()
			}
		}()
	}

	statusCh, errCh := d.client.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)

	var exitCode int
	select {
	case err := <-errCh:
		return -1, fmt.Errorf("failed to wait for container: %w", err)
	case status := <-statusCh:
		if status.Error != nil {
			return -1, fmt.Errorf("container wait reported error: %s", status.Error.Message)
		}
		exitCode = int(status.StatusCode)
	case <-ctx.Done():
		return -1, ctx.Err()
	}

	if err := <-streamDone; err != nil && err != io.EOF {
		slog.Warn("Container output stream ended with error", "containerID", containerID, "error", err)
	}

	slog.Info("Container finished", "containerID", containerID, "exitCode", exitCode)
	return exitCode, nil
}
