package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"netconnect/internal/logging"
	"netconnect/internal/netconnectd"
	"netconnect/internal/poller"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var intervalFlag int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll daemon status on an interval and log the result",
		Long: `Poll the daemon's status and visible networks on a fixed interval and
write each snapshot as a structured log line. Only one watcher may run
per lock file. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			lockPath := cfg.Watch.LockPath
			if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
				return fmt.Errorf("create lock directory: %w", err)
			}
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire watch lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another watcher is already running (lock %s)", lockPath)
			}
			defer lock.Unlock()

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Output: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			client := netconnectd.New(ctx.socketPath(), ctx.timeout(), logger)

			watchInterval := cfg.WatchInterval()
			if intervalFlag > 0 {
				watchInterval = time.Duration(intervalFlag) * time.Second
			}

			watcher := poller.New(client, logger, watchInterval, cfg.Host.Interfaces)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watcher.Start(runCtx); err != nil {
				return err
			}
			logger.Info("watching netconnectd",
				logging.String("socket", ctx.socketPath()),
				logging.Duration("interval", watchInterval),
			)

			<-runCtx.Done()
			watcher.Stop()
			logger.Info("watch stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&intervalFlag, "interval", 0, "Poll interval in seconds (0 uses the configured value)")
	return cmd
}
