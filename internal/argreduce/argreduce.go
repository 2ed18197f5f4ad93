// Package argreduce implements the coarse-then-fine compiler-argument
// shrinker (spec.md §4.C): a reverse-order cursor walk that attempts to
// remove windows of arguments, widened by paired-flag rules, reprobing
// the oracle on each candidate.
package argreduce

import (
	"context"
	"fmt"
	"strings"

	"swiftreduce/internal/logging"
	"swiftreduce/internal/oracle"
	"swiftreduce/internal/request"
)

// Invoker is the subset of *oracle.Oracle the reducer needs. Reducers
// depend on this interface, not the concrete type, so they can be probed
// with a fake oracle in tests.
type Invoker interface {
	Invoke(ctx context.Context, ri *request.RequestInfo) (oracle.Result, error)
}

// ProgressFunc reports fractional progress in [0,1] and a human message.
type ProgressFunc func(fraction float64, message string)

// Reduce shrinks ri.CompilerArgs, probing o.Invoke on each candidate and
// keeping only removals that preserve Reproduces. It runs the coarse pass
// (window size 10) followed by the fine pass (window size 1), each
// walking the cursor from the end of the argument list toward the start.
func Reduce(ctx context.Context, o Invoker, ri *request.RequestInfo, progress ProgressFunc) (*request.RequestInfo, error) {
	initialCount := len(ri.CompilerArgs)
	if initialCount == 0 {
		return ri, nil
	}

	current := ri
	for _, windowSize := range []int{10, 1} {
		var err error
		current, err = pass(ctx, o, current, windowSize, initialCount, progress)
		if err != nil {
			return current, err
		}
	}
	return current, nil
}

func pass(ctx context.Context, o Invoker, ri *request.RequestInfo, windowSize, initialCount int, progress ProgressFunc) (*request.RequestInfo, error) {
	cursor := len(ri.CompilerArgs) - 1

	for cursor >= 0 {
		if err := ctx.Err(); err != nil {
			return ri, err
		}

		start := cursor - windowSize + 1
		if start < 0 {
			start = 0
		}
		start = extendForPairedFlags(ri.CompilerArgs, start)

		candidate := removeWindow(ri.CompilerArgs, start, cursor)
		verdict, err := probe(ctx, o, ri, candidate)
		if err != nil {
			return ri, err
		}

		if verdict != oracle.Reproduces && start > 0 && strings.HasPrefix(ri.CompilerArgs[start-1], "-") {
			retryStart := extendForPairedFlags(ri.CompilerArgs, start-1)
			candidate = removeWindow(ri.CompilerArgs, retryStart, cursor)
			verdict, err = probe(ctx, o, ri, candidate)
			if err != nil {
				return ri, err
			}
			if verdict == oracle.Reproduces {
				start = retryStart
			}
		}

		if verdict == oracle.Reproduces {
			logging.ArgReduceDebug("removed args[%d:%d]: %v", start, cursor+1, ri.CompilerArgs[start:cursor+1])
			ri = ri.WithCompilerArgs(candidate)
			cursor = start - 1
		} else {
			cursor -= windowSize
		}

		if progress != nil {
			remaining := len(ri.CompilerArgs)
			fraction := 1 - float64(remaining)/float64(initialCount)
			progress(clamp01(fraction), fmt.Sprintf("argument reduction: %d args remaining", remaining))
		}
	}

	return ri, nil
}

// extendForPairedFlags widens the removal window's start index by one
// while the argument immediately preceding it begins with "-X" (the
// cross-tool driver prefix, e.g. -Xcc, -Xlinker), per spec.md §4.C.
func extendForPairedFlags(args []string, start int) int {
	for start > 0 && strings.HasPrefix(args[start-1], "-X") {
		start--
	}
	return start
}

func removeWindow(args []string, start, end int) []string {
	out := make([]string, 0, len(args)-(end-start+1))
	out = append(out, args[:start]...)
	out = append(out, args[end+1:]...)
	return out
}

func probe(ctx context.Context, o Invoker, base *request.RequestInfo, candidateArgs []string) (oracle.Verdict, error) {
	candidate := base.WithCompilerArgs(candidateArgs)
	result, err := o.Invoke(ctx, candidate)
	if err != nil {
		return oracle.Error, err
	}
	return result.Verdict, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
