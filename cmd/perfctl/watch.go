package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"jobtracker-backend/internal/shared/telemetry"
)

var watchOpts computeOptions

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute the snapshot whenever the records or goals file changes",
	RunE:  runWatch,
}

func init() {
	bindComputeFlags(watchCmd.Flags(), &watchOpts)
	if err := watchCmd.MarkFlagRequired("records"); err != nil {
		panic(fmt.Sprintf("failed to mark records flag as required: %v", err))
	}
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watch(ctx, watchOpts, func() {
		recompute(watchOpts)
	})
}

func recompute(o computeOptions) {
	snapshot, n, err := computeSnapshot(o)
	if err != nil {
		telemetry.Error("perfctl.compute_failed", map[string]any{"error": err})
		return
	}
	if err := writeSnapshot(o.OutPath, snapshot); err != nil {
		telemetry.Error("perfctl.write_failed", map[string]any{"error": err})
		return
	}
	telemetry.Info("perfctl.computed", map[string]any{"records": n, "out": o.OutPath})
}

// watch runs onChange once, then again after every write to the inputs,
// until ctx is cancelled. Failed runs are logged and keep the last output.
func watch(ctx context.Context, o computeOptions, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	inputs := map[string]struct{}{}
	for _, p := range []string{o.RecordsPath, o.GoalsPath} {
		if p == "" {
			continue
		}
		inputs[filepath.Clean(p)] = struct{}{}
		// Watch the directory so atomic saves that replace the file are seen.
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	onChange()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, tracked := inputs[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			telemetry.Info("perfctl.input_changed", map[string]any{"path": event.Name})
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			telemetry.Warn("perfctl.watch_error", map[string]any{"error": err})
		}
	}
}
