package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/suspendtime"
)

// SleepReport describes a completed suspend-aware sleep.
type SleepReport struct {
	Requested   time.Duration `json:"requested"`
	Unsuspended time.Duration `json:"unsuspended"`
	Wall        time.Duration `json:"wall"`
}

func (r SleepReport) String() string {
	return fmt.Sprintf("slept %v of unsuspended time (requested %v, wall %v)",
		r.Unsuspended, r.Requested, r.Wall)
}

// NewSleepCommand creates the sleep command.
func NewSleepCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep <duration>",
		Short: "Sleep for a duration of suspend-excluding time",
		Long: `Sleep until the given duration of suspend-excluding time has passed.

Unlike the shell's sleep, time spent with the machine suspended does not
count: "suspendtime sleep 10m" suspended for an hour in the middle still has
10 minutes of running-machine time to wait when it wakes up.

Example:
  suspendtime sleep 30s
  suspendtime sleep 1h30m --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSleep(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSleep(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	d, err := time.ParseDuration(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeBadDuration, fmt.Sprintf("invalid duration %q", arg), err.Error())
		return WrapExitError(ExitCommandError, "invalid duration", err)
	}
	if d < 0 {
		msg := fmt.Sprintf("duration must be non-negative, got %v", d)
		_ = formatter.Error(ErrCodeBadDuration, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Debug("sleeping", "duration", d)
	wallStart := time.Now()
	start := suspendtime.Now()

	if err := suspendtime.Sleep(ctx, d); err != nil {
		_ = formatter.Error(ErrCodeInterrupted, "sleep interrupted", err.Error())
		return WrapExitError(ExitFailure, "sleep interrupted", err)
	}

	return formatter.Success(SleepReport{
		Requested:   d,
		Unsuspended: start.Elapsed(),
		Wall:        time.Since(wallStart),
	})
}
