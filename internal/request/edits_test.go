package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEditsAppliesInStartOrderRegardlessOfInputOrder(t *testing.T) {
	text := "let x = 1\nlet y = 2\ncrash()\nlet z = 3\n"
	edits := []SourceEdit{
		{Start: 20, End: 20 + len("crash()\n"), NewText: ""},
		{Start: 0, End: len("let x = 1\n"), NewText: ""},
	}

	out, applied := ApplyEdits(text, edits)
	assert.Equal(t, "let y = 2\nlet z = 3\n", out)
	assert.Len(t, applied, 2)
}

func TestApplyEditsDropsOverlappingLaterEdit(t *testing.T) {
	text := "abcdef"
	edits := []SourceEdit{
		{Start: 0, End: 3, NewText: "X"},
		{Start: 2, End: 4, NewText: "Y"}, // overlaps [0,3)
	}

	out, applied := ApplyEdits(text, edits)
	assert.Equal(t, "Xdef", out)
	assert.Len(t, applied, 1)
}

func TestApplyEditsNoEditsReturnsOriginal(t *testing.T) {
	out, applied := ApplyEdits("unchanged", nil)
	assert.Equal(t, "unchanged", out)
	assert.Nil(t, applied)
}

func TestAdjustOffsetEditBeforeOffsetShiftsByDelta(t *testing.T) {
	// "helloXXX world", offset at "world" (index 9) before edit removes XXX
	edit := SourceEdit{Start: 5, End: 8, NewText: ""}
	assert.Equal(t, 9-3, AdjustOffset(9, edit))
}

func TestAdjustOffsetEditAfterOffsetLeavesUnchanged(t *testing.T) {
	edit := SourceEdit{Start: 20, End: 25, NewText: "z"}
	assert.Equal(t, 5, AdjustOffset(5, edit))
}

func TestAdjustOffsetStraddlingEditRelocatesToEditStart(t *testing.T) {
	edit := SourceEdit{Start: 3, End: 10, NewText: ""}
	assert.Equal(t, 3, AdjustOffset(6, edit))
}

func TestRequestInfoApplyEditsClampsOffsetIntoRange(t *testing.T) {
	ri := &RequestInfo{
		FileContents: "let x = 1\ncrash()\n",
		Offset:       18, // points at end of file
	}
	edits := []SourceEdit{{Start: 10, End: 18, NewText: ""}}

	out := ri.ApplyEdits(edits)
	assert.Equal(t, "let x = 1\n", out.FileContents)
	assert.GreaterOrEqual(t, out.Offset, 0)
	assert.LessOrEqual(t, out.Offset, len(out.FileContents))
}
