package srcreduce

import (
	"context"

	"swiftreduce/internal/request"
)

// removeMembersStatements removes one member or one statement per
// attempt, re-running the pass until a full pass makes no progress, per
// spec.md §4.D step 5. Stateful like emptyFunctionBodies.
func removeMembersStatements(ctx context.Context, o Invoker, ri *request.RequestInfo, keep keepSet) (*request.RequestInfo, error) {
	for {
		pf, err := parseSource(ctx, ri.FileContents)
		if err != nil {
			return ri, err
		}
		nodes := pf.memberOrStatementNodes()

		progressed := false
		for _, n := range nodes {
			text := pf.text(n)
			if keep.contains(text) {
				continue
			}
			keep.add(text)

			edits := []request.SourceEdit{{Start: int(n.StartByte()), End: int(n.EndByte()), NewText: ""}}
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
