// Command swiftreduce reduces a failing sourcekitd or swift-frontend
// request to the smallest still-failing reproducer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swiftreduce/internal/config"
	"swiftreduce/internal/logging"
)

var (
	verbose   bool
	workspace string
	cfgPath   string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "swiftreduce",
	Short: "Reduce a failing sourcekitd/swift-frontend request to a minimal reproducer",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewCLILogger(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}

		path := cfgPath
		if path == "" {
			path = filepath.Join(ws, ".swiftreduce", "config.yaml")
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		if err := logging.Initialize(ws, logging.LoggingConfig{
			DebugMode:  cfg.Logging.DebugMode,
			Categories: cfg.Logging.Categories,
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace directory for .swiftreduce state (default: cwd)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to swiftreduce.yaml (default: <workspace>/.swiftreduce/config.yaml)")

	rootCmd.AddCommand(reduceCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
