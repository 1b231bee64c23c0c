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

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Interval time.Duration
	Count    int
	Config   string

	// sample overrides clock sampling (for testing). If nil, a sampler
	// over the real clocks is created when the command runs.
	sample func() WatchSample
}

// WatchSample is one observation of the two timelines.
type WatchSample struct {
	// Wall is the elapsed time according to the runtime clock.
	Wall time.Duration `json:"wall"`
	// Unsuspended is the elapsed time according to the suspend-excluding
	// clock.
	Unsuspended time.Duration `json:"unsuspended"`
	// Suspended is how far the two have diverged, i.e. roughly how long
	// the machine has been asleep since watching started. Never negative.
	Suspended time.Duration `json:"suspended"`
}

func (s WatchSample) String() string {
	return fmt.Sprintf("wall=%v unsuspended=%v suspended=%v", s.Wall, s.Unsuspended, s.Suspended)
}

// WatchSummary is printed once watching stops.
type WatchSummary struct {
	Samples     int           `json:"samples"`
	Wall        time.Duration `json:"wall"`
	Unsuspended time.Duration `json:"unsuspended"`
	Suspended   time.Duration `json:"suspended"`
}

func (s WatchSummary) String() string {
	return fmt.Sprintf("watched %d sample(s): wall=%v unsuspended=%v suspended=%v",
		s.Samples, s.Wall, s.Unsuspended, s.Suspended)
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Compare wall-clock time against suspend-excluding time",
		Long: `Periodically sample the runtime clock and the suspend-excluding clock
and print how far they have diverged.

Suspend the machine while this runs: the wall column keeps growing through
the suspend, the unsuspended column does not, and the suspended column shows
the difference.

Example:
  suspendtime watch --interval 1s
  suspendtime watch --count 10 --format json
  suspendtime watch --config watch.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", time.Second, "sampling interval")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "number of samples to take (0 = until interrupted)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config with watch defaults")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	if opts.Config != "" {
		cfg, err := LoadWatchConfig(opts.Config)
		if err != nil {
			_ = watchFormatter(opts, cmd).Error(ErrCodeConfig, err.Error(), nil)
			return WrapExitError(ExitCommandError, "loading config", err)
		}
		applyWatchConfig(opts, cfg, cmd)
	}

	// Built only after the config is applied: the config may set the
	// output format.
	formatter := watchFormatter(opts, cmd)
	if opts.Interval <= 0 {
		msg := fmt.Sprintf("interval must be positive, got %v", opts.Interval)
		_ = formatter.Error(ErrCodeBadDuration, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if opts.Count < 0 {
		msg := fmt.Sprintf("count must be non-negative, got %d", opts.Count)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	sample := opts.sample
	if sample == nil {
		sample = newSampler()
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Debug("watch starting", "interval", opts.Interval, "count", opts.Count)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	taken := 0
	var last WatchSample
	for opts.Count == 0 || taken < opts.Count {
		select {
		case <-ctx.Done():
			slog.Debug("watch interrupted", "samples", taken)
			return formatter.Success(watchSummary(taken, last))
		case <-ticker.C:
		}
		last = sample()
		taken++
		if err := formatter.Success(last); err != nil {
			return err
		}
	}

	return formatter.Success(watchSummary(taken, last))
}

// watchFormatter builds the command's output formatter from the current
// option values.
func watchFormatter(opts *WatchOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// newSampler captures both clock baselines now and returns a sampler
// relative to them.
func newSampler() func() WatchSample {
	wallStart := time.Now()
	suspendStart := suspendtime.Now()
	return func() WatchSample {
		wall := time.Since(wallStart)
		unsuspended := suspendStart.Elapsed()
		suspended := wall - unsuspended
		if suspended < 0 {
			// The two clocks tick at slightly different resolutions;
			// tiny negative divergence is noise, not time travel.
			suspended = 0
		}
		return WatchSample{Wall: wall, Unsuspended: unsuspended, Suspended: suspended}
	}
}

func watchSummary(taken int, last WatchSample) WatchSummary {
	return WatchSummary{
		Samples:     taken,
		Wall:        last.Wall,
		Unsuspended: last.Unsuspended,
		Suspended:   last.Suspended,
	}
}

// applyWatchConfig fills options from the config file for flags the user did
// not set explicitly. Flags win over config, config wins over defaults.
func applyWatchConfig(opts *WatchOptions, cfg *WatchConfig, cmd *cobra.Command) {
	if cfg.Interval > 0 && !cmd.Flags().Changed("interval") {
		opts.Interval = cfg.Interval
	}
	if cfg.Count > 0 && !cmd.Flags().Changed("count") {
		opts.Count = cfg.Count
	}
	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		opts.Format = cfg.Format
	}
}
