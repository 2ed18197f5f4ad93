package srcreduce

import (
	"context"

	"swiftreduce/internal/request"
)

// emptyFunctionBodies replaces the contents of each function-like body
// with empty text, one body per attempt, per spec.md §4.D step 4. It is
// stateful: once a body's canonical text has been attempted it is never
// retried, even if surrounding reductions later change its position.
func emptyFunctionBodies(ctx context.Context, o Invoker, ri *request.RequestInfo, keep keepSet) (*request.RequestInfo, error) {
	for {
		pf, err := parseSource(ctx, ri.FileContents)
		if err != nil {
			return ri, err
		}
		bodies := pf.functionBodies()

		progressed := false
		for _, body := range bodies {
			text := pf.text(body)
			if keep.contains(text) {
				continue
			}
			keep.add(text)

			innerStart := int(body.StartByte()) + 1
			innerEnd := int(body.EndByte()) - 1
			if innerEnd <= innerStart {
				continue // already empty
			}

			edits := []request.SourceEdit{{Start: innerStart, End: innerEnd, NewText: ""}}
			next, accepted, attemptErr := attempt(ctx, o, ri, edits)
			if attemptErr != nil {
				pf.close()
				return ri, attemptErr
			}
			if accepted {
				ri = next
				progressed = true
				break // offsets are stale; restart the pass
			}
		}
		pf.close()

		if !progressed {
			return ri, nil
		}
	}
}
