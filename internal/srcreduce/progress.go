package srcreduce

// progressTracker implements the per-import progress model of
// spec.md §4.D: each import contributes an equal share of overall
// progress, and within the current import's share, progress reflects
// how much the file has shrunk since the last successful inline.
type progressTracker struct {
	share               float64
	importsRemoved      int
	sizeAfterLastInline int
	suppressNext        bool
}

func newProgressTracker(initialImportCount, initialFileSize int) *progressTracker {
	return &progressTracker{
		share:               1.0 / float64(initialImportCount+1),
		sizeAfterLastInline: initialFileSize,
	}
}

// onInlineSuccess records a successful import inline. Per spec.md §4.D,
// progress is not reported on the step immediately following a
// successful inline, since the file can grow.
func (p *progressTracker) onInlineSuccess(newSize int) {
	p.importsRemoved++
	p.sizeAfterLastInline = newSize
	p.suppressNext = true
}

// report returns the current progress fraction and whether it should be
// surfaced to the caller this step.
func (p *progressTracker) report(currentSize int) (float64, bool) {
	if p.suppressNext {
		p.suppressNext = false
		return 0, false
	}

	shrink := 0.0
	if p.sizeAfterLastInline > 0 {
		shrink = 1 - float64(currentSize)/float64(p.sizeAfterLastInline)
	}

	frac := float64(p.importsRemoved)*p.share + shrink*p.share
	return clamp01(frac), true
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
