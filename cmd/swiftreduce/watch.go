package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"swiftreduce/internal/logging"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <request-file> <source-file>",
	Short: "Re-run reduce whenever the request or source file changes",
	Long: `Watches request-file and source-file for writes and re-invokes
reduce on each change, debounced. This is a thin convenience wrapper
around reduce; it does not change reduction semantics.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "minimum interval between re-runs")
	watchCmd.Flags().BoolVar(&reduceFrontend, "frontend", false, "treat request-file as a swift-frontend argument list, one per line")
}

func runWatch(cmd *cobra.Command, args []string) error {
	requestPath, sourcePath := args[0], args[1]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range []string{requestPath, sourcePath} {
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	fmt.Printf("watching %s and %s for changes (ctrl-c to stop)\n", requestPath, sourcePath)

	var lastRun time.Time
	watched := map[string]bool{requestPath: true, sourcePath: true}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if time.Since(lastRun) < watchDebounce {
				continue
			}
			lastRun = time.Now()

			fmt.Printf("change detected in %s, re-running reduce\n", event.Name)
			if err := runReduce(cmd, []string{requestPath, sourcePath}); err != nil {
				logging.DriverError("watch-triggered reduce failed: %v", err)
				fmt.Println("reduce failed:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.DriverError("watcher error: %v", err)
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}
