package srcreduce

import (
	"context"

	"swiftreduce/internal/request"
)

// dedupeTopLevelItems removes later occurrences of top-level items with
// identical trimmed text, one at a time, keeping the first (spec.md §4.D
// step 2). It stops at the first duplicate whose removal the oracle
// rejects; duplicates after that one are left in place.
func dedupeTopLevelItems(ctx context.Context, o Invoker, ri *request.RequestInfo) (*request.RequestInfo, error) {
	for {
		pf, err := parseSource(ctx, ri.FileContents)
		if err != nil {
			return ri, err
		}
		items := pf.topLevelItems()

		seen := make(map[string]bool, len(items))
		var dup *sourceRange
		for _, item := range items {
			text := canonicalize(pf.text(item))
			if seen[text] {
				dup = &sourceRange{start: int(item.StartByte()), end: int(item.EndByte())}
				break
			}
			seen[text] = true
		}
		pf.close()

		if dup == nil {
			return ri, nil
		}

		edits := []request.SourceEdit{{Start: dup.start, End: dup.end, NewText: ""}}
		next, accepted, err := attempt(ctx, o, ri, edits)
		if err != nil {
			return ri, err
		}
		if !accepted {
			// The oracle declined this duplicate's removal; rescanning would
			// find the same duplicate again, so end the pass here rather
			// than loop forever.
			return ri, nil
		}
		ri = next
	}
}

// removeTopLevelItems removes up to k adjacent top-level items at a time
// for k in {100, 10, 1}, walking windows across the item list, per
// spec.md §4.D step 3.
func removeTopLevelItems(ctx context.Context, o Invoker, ri *request.RequestInfo) (*request.RequestInfo, error) {
	for _, windowSize := range []int{100, 10, 1} {
		var err error
		ri, err = removeTopLevelItemsWindow(ctx, o, ri, windowSize)
		if err != nil {
			return ri, err
		}
	}
	return ri, nil
}

func removeTopLevelItemsWindow(ctx context.Context, o Invoker, ri *request.RequestInfo, windowSize int) (*request.RequestInfo, error) {
	for {
		start := 0
		progressed := false

		for {
			pf, err := parseSource(ctx, ri.FileContents)
			if err != nil {
				return ri, err
			}
			items := pf.topLevelItems()

			if start >= len(items) {
				pf.close()
				break
			}

			end := start + windowSize
			if end > len(items) {
				end = len(items)
			}
			rng := sourceRange{start: int(items[start].StartByte()), end: int(items[end-1].EndByte())}
			pf.close()

			edits := []request.SourceEdit{{Start: rng.start, End: rng.end, NewText: ""}}
			next, accepted, attemptErr := attempt(ctx, o, ri, edits)
			if attemptErr != nil {
				return ri, attemptErr
			}
			if accepted {
				ri = next
				progressed = true
				continue // item offsets are now stale; rescan from the same start
			}
			start++
		}

		if !progressed {
			return ri, nil
		}
	}
}

type sourceRange struct {
	start, end int
}
