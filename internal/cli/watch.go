package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/internal/retry"
	"github.com/vvka-141/tabwatch/internal/tui"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var watchFlags struct {
	interval time.Duration
	retries  int
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report each time a newer data file appears",
	Long: `Watch checks the data directory on a timer and prints a summary line
whenever the newest valid file changes (a new file, or the same file
modified). Failures are printed once until they change.

A file caught while it is still being written (empty, truncated, or an
unreadable workbook) is re-read up to --retries times with backoff
before the failure is reported.

Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlags.interval, "interval", 2*time.Second, "Time between checks")
	watchCmd.Flags().IntVar(&watchFlags.retries, "retries", 3, "Re-reads of a file that looks partially written (0 disables)")
	rootCmd.AddCommand(watchCmd)
}

// watchPrinter reports watch events through a progress display.
type watchPrinter struct {
	display *tui.ProgressDisplay
}

func (p *watchPrinter) OnSnapshot(snap *tabwatch.Snapshot) {
	p.display.Success(describeSnapshot(snap))
}

func (p *watchPrinter) OnError(err error) {
	p.display.Error(tabwatch.UserMessage(err))
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchFlags.interval <= 0 {
		return fmt.Errorf("invalid argument %s for --interval: must be positive", watchFlags.interval)
	}
	if watchFlags.retries < 0 {
		return fmt.Errorf("invalid argument %d for --retries: must not be negative", watchFlags.retries)
	}

	return runWithApp(cmd, func(a *app) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		display := tui.NewProgressDisplay(cmd.OutOrStdout())
		display.Start(fmt.Sprintf("watching %s every %s (Ctrl+C to stop)", a.settings.Scope.DataDir, watchFlags.interval))

		service := a.service
		if watchFlags.retries > 0 {
			executor := retry.NewExecutor(retry.NewFileErrorClassifier(), retry.NewExponentialBackoff(watchFlags.retries))
			service = service.WithRetry(executor)
		}

		err := service.Watch(ctx, watchFlags.interval, &watchPrinter{display: display})
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
