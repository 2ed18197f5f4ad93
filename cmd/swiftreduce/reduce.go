package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"swiftreduce/internal/cache"
	"swiftreduce/internal/diffreport"
	"swiftreduce/internal/driver"
	"swiftreduce/internal/oracle"
	"swiftreduce/internal/predicate"
	"swiftreduce/internal/request"
	swiftreduceui "swiftreduce/cmd/swiftreduce/ui"
)

var (
	reduceOutputPath string
	reduceFrontend   bool
	reduceNoTUI      bool
	reduceShowDiff   bool
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <request-file> <source-file>",
	Short: "Reduce a failing sourcekitd request or swift-frontend invocation",
	Long: `Reduces a logged sourcekitd request (or, with --frontend, a raw
swift-frontend argument list) to the smallest source and argument list
that still reproduces the failure, per the oracle configured in
swiftreduce.yaml.`,
	Args: cobra.ExactArgs(2),
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().StringVarP(&reduceOutputPath, "output", "o", "", "path to write the reduced source file (default: <source-file>.reduced)")
	reduceCmd.Flags().BoolVar(&reduceFrontend, "frontend", false, "treat request-file as a swift-frontend argument list, one per line")
	reduceCmd.Flags().BoolVar(&reduceNoTUI, "no-tui", false, "print plain progress lines instead of the interactive bar")
	reduceCmd.Flags().BoolVar(&reduceShowDiff, "diff", false, "print a unified diff between the original and reduced source")
}

func runReduce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Subject.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Subject.Timeout)
		defer cancel()
	}

	requestPath, sourcePath := args[0], args[1]

	rawRequest, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}
	sourceBytes, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	var ri *request.RequestInfo
	if reduceFrontend {
		ri, err = request.ParseFrontendArgs(ctx, splitLines(string(rawRequest)))
		if err != nil {
			return fmt.Errorf("parsing frontend arguments: %w", err)
		}
		ri.FileContents = string(sourceBytes)
	} else {
		ri, _, err = request.ParseLoggedRequest(string(rawRequest), string(sourceBytes))
		if err != nil {
			return fmt.Errorf("parsing logged request: %w", err)
		}
	}

	var pred predicate.Expr
	if cfg.Subject.Predicate != "" {
		pred, err = predicate.Parse(cfg.Subject.Predicate)
		if err != nil {
			return fmt.Errorf("parsing reproducer predicate: %w", err)
		}
	}

	o, err := oracle.New(oracle.Config{
		SourcekitdPath:   cfg.Subject.SourcekitdPath,
		HelperPath:       cfg.Subject.HelperPath,
		FrontendPath:     cfg.Subject.FrontendPath,
		PluginPath:       cfg.Subject.PluginPath,
		ClientPluginPath: cfg.Subject.ClientPluginPath,
		Predicate:        pred,
		ScratchRoot:      cfg.ScratchRoot,
	})
	if err != nil {
		return fmt.Errorf("initializing oracle: %w", err)
	}
	defer o.Close()

	initialByteSize := len(ri.FileContents)
	initialArgCount := len(ri.CompilerArgs)
	startedAt := time.Now()

	var progress driver.ProgressFunc
	var bar *swiftreduceui.ProgressProgram
	if !reduceNoTUI && isTerminal(os.Stdout) {
		bar = swiftreduceui.NewProgressProgram("reducing")
		bar.Start()
		defer bar.Stop()
		progress = bar.Report
	} else {
		progress = func(fraction float64, message string) {
			fmt.Fprintf(os.Stderr, "[%5.1f%%] %s\n", fraction*100, message)
		}
	}

	reduced, runErr := driver.Run(ctx, o, ri, progress)
	if bar != nil {
		bar.Stop()
	}

	outcome := "success"
	if runErr != nil {
		outcome = runErr.Error()
	}

	if cfg.Cache.Enabled {
		if store, cacheErr := cache.Open(cfg.Cache.Path); cacheErr == nil {
			_, _ = store.InsertRun(cache.Run{
				StartedAt:       startedAt.Unix(),
				InitialByteSize: initialByteSize,
				FinalByteSize:   len(reduced.FileContents),
				InitialArgCount: initialArgCount,
				FinalArgCount:   len(reduced.CompilerArgs),
				Outcome:         outcome,
			})
			store.Close()
		}
	}

	outPath := reduceOutputPath
	if outPath == "" {
		outPath = sourcePath + ".reduced"
	}
	if writeErr := os.WriteFile(outPath, []byte(reduced.FileContents), 0o644); writeErr != nil {
		return fmt.Errorf("writing reduced source: %w", writeErr)
	}

	fmt.Printf("reduced source written to %s (%s, %d -> %d args)\n",
		outPath, diffreport.Summary(string(sourceBytes), reduced.FileContents), initialArgCount, len(reduced.CompilerArgs))

	if reduceShowDiff {
		fmt.Print(diffreport.DefaultEngine.Unified(string(sourceBytes), reduced.FileContents, 2))
	}

	if runErr != nil {
		return fmt.Errorf("reduction stopped early: %w", runErr)
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if line := s[start:i]; line != "" {
				lines = append(lines, line)
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
