// Package diffreport renders human-readable unified diffs and byte-delta
// summaries between two source texts, using the sergi/go-diff line-level
// algorithm. The reduce command uses it to report the original source
// against the reduced one; it plays no part in the reduction decision
// itself.
package diffreport

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType classifies one rendered line of a unified diff.
type LineType int

const (
	LineContext LineType = iota
	LineAdded
	LineRemoved
)

// Line is one line of rendered diff output.
type Line struct {
	Type    LineType
	Content string
}

// Engine computes line-level diffs between two source texts.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine constructs a diff engine tuned for whole-file source text:
// timeouts disabled so large reductions never truncate the comparison.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp}
}

// DefaultEngine is a package-level engine for callers that don't need their
// own instance.
var DefaultEngine = NewEngine()

// Lines computes the line-level diff between old and new source text.
func (e *Engine) Lines(oldText, newText string) []Line {
	a, b, lineArray := e.dmp.DiffLinesToChars(oldText, newText)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		var t LineType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			t = LineAdded
		case diffmatchpatch.DiffDelete:
			t = LineRemoved
		default:
			t = LineContext
		}
		for _, ln := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			lines = append(lines, Line{Type: t, Content: ln})
		}
	}
	return lines
}

// Unified renders a compact unified-diff-style string (no hunk headers —
// this is for progress/report display, not patch application) with at most
// contextLines of unchanged context around each changed run.
func (e *Engine) Unified(oldText, newText string, contextLines int) string {
	lines := e.Lines(oldText, newText)

	var b strings.Builder
	changedRun := false
	trailing := 0 // context lines printed since the last changed line
	contextBuf := make([]Line, 0, contextLines)

	flushContext := func(n int) {
		start := 0
		if len(contextBuf) > n {
			start = len(contextBuf) - n
		}
		for _, l := range contextBuf[start:] {
			fmt.Fprintf(&b, "  %s\n", l.Content)
		}
		contextBuf = contextBuf[:0]
	}

	for _, l := range lines {
		switch l.Type {
		case LineContext:
			if changedRun && trailing < contextLines {
				fmt.Fprintf(&b, "  %s\n", l.Content)
				trailing++
				continue
			}
			contextBuf = append(contextBuf, l)
			if len(contextBuf) > contextLines {
				contextBuf = contextBuf[1:]
			}
		case LineAdded:
			flushContext(contextLines)
			changedRun, trailing = true, 0
			fmt.Fprintf(&b, "+ %s\n", l.Content)
		case LineRemoved:
			flushContext(contextLines)
			changedRun, trailing = true, 0
			fmt.Fprintf(&b, "- %s\n", l.Content)
		}
	}
	return b.String()
}

// Summary renders a one-line byte-delta summary suitable for a progress
// message, e.g. "file_contents: 4213 -> 3988 bytes (-225)".
func Summary(oldText, newText string) string {
	delta := len(newText) - len(oldText)
	sign := "+"
	if delta <= 0 {
		sign = ""
	}
	return fmt.Sprintf("file_contents: %d -> %d bytes (%s%d)", len(oldText), len(newText), sign, delta)
}
