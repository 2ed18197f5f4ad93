package srcreduce

import (
	"context"

	"swiftreduce/internal/logging"
	"swiftreduce/internal/oracle"
	"swiftreduce/internal/request"
)

// Invoker is the subset of *oracle.Oracle the source reducer needs.
type Invoker interface {
	Invoke(ctx context.Context, ri *request.RequestInfo) (oracle.Result, error)
}

// attempt applies edits to ri, probes the oracle, and returns the
// accepted RequestInfo (or ri unchanged) plus whether it was accepted.
// It is the single choke point every reduction step funnels through, per
// spec.md §4.D: "compute candidate edits, apply them textually, adjust
// offset, ask the oracle. If Reproduces, accept; if Error or Success,
// revert."
func attempt(ctx context.Context, o Invoker, ri *request.RequestInfo, edits []request.SourceEdit) (*request.RequestInfo, bool, error) {
	if len(edits) == 0 {
		return ri, false, nil
	}

	candidate := ri.ApplyEdits(edits)
	result, err := o.Invoke(ctx, candidate)
	if err != nil {
		return ri, false, err
	}

	if result.Verdict == oracle.Reproduces {
		logging.SrcReduceDebug("accepted edit (%d -> %d bytes)", len(ri.FileContents), len(candidate.FileContents))
		return candidate, true, nil
	}
	return ri, false, nil
}

func validate(ctx context.Context, o Invoker, ri *request.RequestInfo) error {
	result, err := o.Invoke(ctx, ri)
	if err != nil {
		return err
	}
	if result.Verdict != oracle.Reproduces {
		return ErrNotReproducing
	}
	return nil
}
