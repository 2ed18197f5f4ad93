package srcreduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerSharesAreEvenAcrossImports(t *testing.T) {
	tr := newProgressTracker(3, 1000)
	assert.InDelta(t, 0.25, tr.share, 1e-9)
}

func TestProgressTrackerSuppressesReportRightAfterInline(t *testing.T) {
	tr := newProgressTracker(1, 1000)
	tr.onInlineSuccess(1200)

	_, ok := tr.report(1200)
	assert.False(t, ok, "progress must not be reported on the step immediately after a successful inline")
}

func TestProgressTrackerReportsShrinkWithinCurrentShare(t *testing.T) {
	tr := newProgressTracker(1, 1000) // share = 0.5
	tr.onInlineSuccess(1000)
	tr.report(1000) // consume the suppressed report

	frac, ok := tr.report(500) // halved since last inline
	assert.True(t, ok)
	// importsRemoved=1 contributes 1*0.5; shrink=0.5 contributes 0.5*0.5 -> 0.75
	assert.InDelta(t, 0.75, frac, 1e-9)
}

func TestProgressTrackerClampsToUnitInterval(t *testing.T) {
	tr := newProgressTracker(0, 100)
	frac, ok := tr.report(-5) // pathological, shouldn't happen, but must not escape [0,1]
	assert.True(t, ok)
	assert.GreaterOrEqual(t, frac, 0.0)
	assert.LessOrEqual(t, frac, 1.0)
}

func TestKeepSetTracksCanonicalTrimmedText(t *testing.T) {
	k := make(keepSet)
	assert.False(t, k.contains("  crash()  \n"))
	k.add("  crash()  \n")
	assert.True(t, k.contains("crash()"))
	assert.True(t, k.contains("\ncrash()\n"))
}
