package diffreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesDetectsAdditionsAndRemovals(t *testing.T) {
	old := "let x = 1\nlet y = 2\n"
	next := "let x = 1\nlet z = 3\n"

	lines := DefaultEngine.Lines(old, next)

	var added, removed int
	for _, l := range lines {
		switch l.Type {
		case LineAdded:
			added++
		case LineRemoved:
			removed++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestUnifiedNoChangesIsEmpty(t *testing.T) {
	text := "crash()\n"
	out := DefaultEngine.Unified(text, text, 3)
	assert.Empty(t, out)
}

func TestSummaryReportsByteDelta(t *testing.T) {
	s := Summary("abcde", "abc")
	assert.Equal(t, "file_contents: 5 -> 3 bytes (-2)", s)
}
