// Package srcreduce implements the staged, tree-sitter-driven source
// reducer (spec.md §4.D): the pipeline that dedupes and removes
// top-level items, empties function bodies, removes members and
// statements, inlines imports, and strips comments, reprobing the
// oracle on every candidate edit.
package srcreduce

import (
	"context"

	"swiftreduce/internal/request"
)

// ProgressFunc reports fractional progress in [0,1] and a human message.
type ProgressFunc func(fraction float64, message string)

// Reduce runs the full source-reduction pipeline against ri, returning
// the smallest RequestInfo the pipeline could find that still
// reproduces under o. If the initial ri does not reproduce, it is
// returned unchanged together with ErrNotReproducing; past that check,
// every RequestInfo it returns reproduced when it was accepted.
func Reduce(ctx context.Context, o Invoker, ri *request.RequestInfo, progress ProgressFunc) (*request.RequestInfo, error) {
	if err := validate(ctx, o, ri); err != nil {
		return ri, err
	}

	var err error
	ri, err = dedupeTopLevelItems(ctx, o, ri)
	if err != nil {
		return ri, err
	}
	ri, err = removeTopLevelItems(ctx, o, ri)
	if err != nil {
		return ri, err
	}

	bodyKeep := make(keepSet)
	memberKeep := make(keepSet)
	ri, err = emptyFunctionBodies(ctx, o, ri, bodyKeep)
	if err != nil {
		return ri, err
	}
	ri, err = removeMembersStatements(ctx, o, ri, memberKeep)
	if err != nil {
		return ri, err
	}

	initialImports, err := countImports(ctx, ri.FileContents)
	if err != nil {
		return ri, err
	}
	tracker := newProgressTracker(initialImports, len(ri.FileContents))

	for {
		var inlined bool
		ri, inlined, err = inlineFirstImport(ctx, o, ri)
		if err != nil {
			return ri, err
		}
		if !inlined {
			break
		}
		tracker.onInlineSuccess(len(ri.FileContents))

		ri, err = removeTopLevelItems(ctx, o, ri)
		if err != nil {
			return ri, err
		}
		ri, err = emptyFunctionBodies(ctx, o, ri, bodyKeep)
		if err != nil {
			return ri, err
		}
		ri, err = removeMembersStatements(ctx, o, ri, memberKeep)
		if err != nil {
			return ri, err
		}

		if progress != nil {
			if frac, ok := tracker.report(len(ri.FileContents)); ok {
				progress(frac, "source reduction in progress")
			}
		}
	}

	ri, err = stripComments(ctx, o, ri)
	if err != nil {
		return ri, err
	}
	if progress != nil {
		progress(1.0, "source reduction complete")
	}
	return ri, nil
}

func countImports(ctx context.Context, source string) (int, error) {
	pf, err := parseSource(ctx, source)
	if err != nil {
		return 0, err
	}
	defer pf.close()

	count := 0
	for _, n := range pf.topLevelItems() {
		if n.Type() == nodeImportDecl {
			count++
		}
	}
	return count, nil
}
