// Package driver orchestrates a full reduction run: validate the
// initial reproduction, optionally merge multi-file front-end input,
// run the source reducer then the argument reducer, and report overall
// progress, per spec.md §4.E.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"swiftreduce/internal/argreduce"
	"swiftreduce/internal/logging"
	"swiftreduce/internal/oracle"
	"swiftreduce/internal/request"
	"swiftreduce/internal/srcreduce"
)

// ErrMergeDidNotReproduce is returned when the front-end path's merged
// multi-file input fails to reproduce (spec.md §4.E, §7).
var ErrMergeDidNotReproduce = errors.New("merge_did_not_reproduce")

// ProgressFunc reports fractional progress in [0,1] and a human message,
// per spec.md §6 Outputs.
type ProgressFunc func(fraction float64, message string)

// Invoker is the subset of *oracle.Oracle the driver needs directly (to
// validate reproduction and, in front-end mode, the merge step).
type Invoker interface {
	Invoke(ctx context.Context, ri *request.RequestInfo) (oracle.Result, error)
}

// Run executes the full reduction pipeline and returns the best
// RequestInfo reached before success, cancellation, or a fatal error. On
// cancellation the best RequestInfo accepted so far is returned alongside
// ctx.Err(), per spec.md §7's cancelled error mode.
func Run(ctx context.Context, o Invoker, ri *request.RequestInfo, progress ProgressFunc) (*request.RequestInfo, error) {
	if ri.IsFrontendMode() {
		merged, err := mergeFrontendInputs(ctx, o, ri)
		if err != nil {
			return ri, err
		}
		ri = merged
	}

	reportSource := func(fraction float64, message string) {
		if progress != nil {
			progress(0.7*fraction, message)
		}
	}
	reportArgs := func(fraction float64, message string) {
		if progress != nil {
			progress(0.7+0.3*fraction, message)
		}
	}

	best := ri
	reduced, err := srcreduce.Reduce(ctx, o, ri, reportSource)
	if reduced != nil {
		best = reduced
	}
	if err != nil {
		logging.DriverError("source reduction stopped early: %v", err)
		return best, err
	}

	reduced, err = argreduce.Reduce(ctx, o, best, reportArgs)
	if reduced != nil {
		best = reduced
	}
	if err != nil {
		logging.DriverError("argument reduction stopped early: %v", err)
		return best, err
	}

	if progress != nil {
		progress(1.0, "reduction complete")
	}
	return best, nil
}

// mergeFrontendInputs concatenates all .swift input files referenced by
// the compiler arguments into a single synthetic file, dropping
// -primary-file and bare file-path arguments and appending a single
// $FILE placeholder, per spec.md §4.E. Each referenced .swift path is
// read from disk in argument order; ri.FileContents plays no part here
// (it is only meaningful for the non-merged, single-file case).
func mergeFrontendInputs(ctx context.Context, o Invoker, ri *request.RequestInfo) (*request.RequestInfo, error) {
	var keptArgs []string
	var swiftPaths []string

	for _, a := range ri.CompilerArgs {
		switch {
		case a == "-primary-file":
			continue
		case strings.HasSuffix(a, ".swift"):
			swiftPaths = append(swiftPaths, a)
			continue
		default:
			keptArgs = append(keptArgs, a)
		}
	}

	if len(swiftPaths) == 0 {
		// Nothing to merge; treat the single existing file as already
		// merged (placeholder substitution still applies at Serialize time).
		return ri, nil
	}
	keptArgs = append(keptArgs, request.PlaceholderFile)

	var merged strings.Builder
	for i, path := range swiftPaths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return ri, fmt.Errorf("reading frontend input %s: %w", path, err)
		}
		if i > 0 {
			merged.WriteByte('\n')
		}
		merged.Write(contents)
	}

	candidate := ri.Clone()
	candidate.CompilerArgs = keptArgs
	candidate.FileContents = merged.String()

	result, err := o.Invoke(ctx, candidate)
	if err != nil {
		return ri, err
	}
	if result.Verdict != oracle.Reproduces {
		return ri, fmt.Errorf("%w", ErrMergeDidNotReproduce)
	}
	return candidate, nil
}
