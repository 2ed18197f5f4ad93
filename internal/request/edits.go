package request

import (
	"sort"
	"strings"
)

// SourceEdit is a replacement (byte_range, new_text) over the current
// file contents. The range is closed half-open: [Start, End).
type SourceEdit struct {
	Start   int
	End     int
	NewText string
}

func (e SourceEdit) length() int { return e.End - e.Start }

// ApplyEdits applies a set of edits to text using the FixItApplier-style
// routine from spec.md §9: edits are sorted by start offset, and any edit
// whose start falls before the end of an already-applied edit is dropped
// rather than applied, since it would overlap already-rewritten text.
// It returns the rewritten text and the subset of edits that were actually
// applied, in application order.
func ApplyEdits(text string, edits []SourceEdit) (string, []SourceEdit) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]SourceEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	applied := make([]SourceEdit, 0, len(sorted))
	lastEnd := 0
	for _, e := range sorted {
		if e.Start < lastEnd {
			continue // overlaps an already-applied edit; drop it
		}
		if e.Start > len(text) || e.End > len(text) || e.Start > e.End {
			continue // out of range; never produced by a well-behaved reducer
		}
		b.WriteString(text[lastEnd:e.Start])
		b.WriteString(e.NewText)
		lastEnd = e.End
		applied = append(applied, e)
	}
	b.WriteString(text[lastEnd:])
	return b.String(), applied
}

// AdjustOffset recomputes an offset after a single accepted edit, per
// spec.md §4.D: edits strictly before the offset shift it by the net byte
// length delta; edits strictly after it leave it untouched; edits that
// straddle the offset relocate it to the edit's start (the offset may now
// point into replacement text — a valid, if unspecified-beyond-this,
// outcome per spec.md's "permitted" straddling rule).
func AdjustOffset(offset int, edit SourceEdit) int {
	delta := len(edit.NewText) - edit.length()
	switch {
	case edit.End <= offset:
		return offset + delta
	case edit.Start >= offset:
		return offset
	default:
		return edit.Start
	}
}

// ApplyEdits returns a new RequestInfo with the given edits applied to
// FileContents and Offset adjusted accordingly, clamped into
// [0, len(new FileContents)] to preserve the offset-validity invariant
// (spec.md §8) even if an edit straddles the offset unexpectedly.
func (r *RequestInfo) ApplyEdits(edits []SourceEdit) *RequestInfo {
	newContent, applied := ApplyEdits(r.FileContents, edits)

	offset := r.Offset
	for _, e := range applied {
		offset = AdjustOffset(offset, e)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(newContent) {
		offset = len(newContent)
	}

	clone := r.Clone()
	clone.FileContents = newContent
	clone.Offset = offset
	return clone
}
