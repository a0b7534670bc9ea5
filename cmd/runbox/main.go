package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"runbox/internal/app"
	"runbox/internal/errors"
	"runbox/internal/ui"
)

// version is set at build time via ldflags
var version = "dev"

// containerExitCode is the wrapped container's exit code, mirrored by the
// wrapper process after cobra unwinds. Exiting from inside a command handler
// would skip the deferred terminal cleanup in run().
var containerExitCode int

var rootCmd = &cobra.Command{
	Use:     "runbox [flags] -- [args...]",
	Short:   "Runbox - run a containerized toolbox against your working directory",
	Version: version,
	Long: `Runbox is a convenience wrapper around a container runtime. It makes sure
the configured image is available locally (pulling it when missing), then runs
it as a foreground container with your working directory and credentials
directory mounted in, forwarding any trailing arguments to the wrapped command.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode, err := app.Run(cmd.Context(), paramsFromFlags(cmd, args))
		if err != nil {
			return err
		}
		containerExitCode = exitCode
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Make sure the configured image is available locally",
	Long: `Pull checks whether the configured image is present in the local image
store and pulls it when it is not. Use --force to re-pull an image that is
already present.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return app.Pull(cmd.Context(), paramsFromFlags(cmd, nil), force)
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Force-pull the configured image to pick up the latest version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Pull(cmd.Context(), paramsFromFlags(cmd, nil), true)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured image, its local presence, and the last pull",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			if err := app.ResetState(); err != nil {
				return err
			}
		}
		return app.Status(cmd.Context(), paramsFromFlags(cmd, nil))
	},
}

// paramsFromFlags assembles app-level parameters from the persistent flags.
// Arguments after -- are forwarded verbatim to the wrapped command.
func paramsFromFlags(cmd *cobra.Command, args []string) app.RunParams {
	profilePath, _ := cmd.Flags().GetString("profile")
	image, _ := cmd.Flags().GetString("image")
	upgrade, _ := cmd.Flags().GetBool("upgrade")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return app.RunParams{
		ProfilePath: profilePath,
		Image:       image,
		Upgrade:     upgrade,
		Quiet:       quiet,
		Args:        args,
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("profile", "f", "", "Path to the runbox profile YAML file (default: ./runbox.yaml if present)")
	rootCmd.PersistentFlags().String("image", "", "Container image reference, overrides the profile")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational output")
	rootCmd.Flags().BoolP("upgrade", "u", false, "Pull the image even if it is already present")

	pullCmd.Flags().Bool("force", false, "Re-pull the image even if it is already present")
	statusCmd.Flags().Bool("reset", false, "Clear the recorded pull state before reporting")

	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	os.Exit(run())
}

// run executes the CLI with signal-aware cancellation. The deferred cursor
// restore is the program-level guarantee that an interrupt mid-spinner still
// leaves the terminal usable.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer ui.RestoreCursor(os.Stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errors.HandleError(err)
		return 1
	}
	return containerExitCode
}
