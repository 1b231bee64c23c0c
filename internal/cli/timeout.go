package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/suspendtime"
)

// TimeoutReport describes the outcome of racing a task against a
// suspend-excluding budget.
type TimeoutReport struct {
	Budget  time.Duration `json:"budget"`
	Task    time.Duration `json:"task"`
	Outcome string        `json:"outcome"` // "completed" | "timed_out"
	Waited  time.Duration `json:"waited"`  // unsuspended time until the race settled
}

func (r TimeoutReport) String() string {
	if r.Outcome == "completed" {
		return fmt.Sprintf("task (%v) completed within budget (%v) after %v", r.Task, r.Budget, r.Waited)
	}
	return fmt.Sprintf("task (%v) timed out: budget (%v) elapsed after %v", r.Task, r.Budget, r.Waited)
}

// NewTimeoutCommand creates the timeout command.
func NewTimeoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeout <budget> <task-duration>",
		Short: "Race a task against a suspend-excluding deadline",
		Long: `Race a simulated task against a budget of suspend-excluding time.

The task sleeps on the runtime's own clock, the way most real work does. The
budget is measured on the suspend-excluding clock. Suspending the machine
mid-race therefore eats into the task's time but not into the budget, which
is the whole point.

Exit status is 0 if the task completes, 1 if the budget elapses first.

Example:
  suspendtime timeout 2s 1s     # task wins
  suspendtime timeout 1s 2s     # budget wins`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeout(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runTimeout(opts *RootOptions, budgetArg, taskArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	budget, err := parsePositiveDuration("budget", budgetArg)
	if err != nil {
		_ = formatter.Error(ErrCodeBadDuration, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid budget", err)
	}
	task, err := parsePositiveDuration("task-duration", taskArg)
	if err != nil {
		_ = formatter.Error(ErrCodeBadDuration, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid task-duration", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Debug("racing task against budget", "budget", budget, "task", task)
	start := suspendtime.Now()

	// The task sleeps on the runtime clock, deliberately: it stands in for
	// ordinary work that has no idea suspends exist.
	_, err = suspendtime.Timeout(ctx, budget, func(ctx context.Context) (struct{}, error) {
		select {
		case <-time.After(task):
			return struct{}{}, nil
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
	})

	report := TimeoutReport{
		Budget: budget,
		Task:   task,
		Waited: start.Elapsed(),
	}
	switch {
	case err == nil:
		report.Outcome = "completed"
		return formatter.Success(report)
	case errors.Is(err, suspendtime.ErrTimedOut):
		report.Outcome = "timed_out"
		_ = formatter.Error(ErrCodeTimedOut, report.String(), report)
		return NewExitError(ExitFailure, "timed out")
	default:
		_ = formatter.Error(ErrCodeInterrupted, "race interrupted", err.Error())
		return WrapExitError(ExitFailure, "race interrupted", err)
	}
}

// parsePositiveDuration parses a flag/argument that must be a positive
// duration.
func parsePositiveDuration(name, arg string) (time.Duration, error) {
	d, err := time.ParseDuration(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %v", name, d)
	}
	return d, nil
}
