// Package oracle runs a subject sourcekitd/swift-frontend subprocess for
// one RequestInfo and classifies the outcome, per spec.md §4.B. Every
// call is isolated in a fresh scratch directory and a fresh child
// process; the subject is expected to crash, and must never take the
// reducer down with it.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"swiftreduce/internal/logging"
	"swiftreduce/internal/predicate"
	"swiftreduce/internal/request"
)

// Verdict is the tri-state result of one oracle invocation.
type Verdict int

const (
	// Reproduces means the failure of interest is still present.
	Reproduces Verdict = iota
	// Error means the subject ran and failed cleanly, but not with the
	// failure being chased.
	Error
	// Success means the subject ran to completion; Output carries its
	// combined textual response.
	Success
)

func (v Verdict) String() string {
	switch v {
	case Reproduces:
		return "Reproduces"
	case Error:
		return "Error"
	case Success:
		return "Success"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one Invoke call.
type Result struct {
	Verdict Verdict
	Output  string // combined stdout, populated only for Success
}

// ErrOracleTransient signals a failure to spawn the subject or to perform
// scratch-directory I/O — distinct from a subject-reported Error verdict.
// Propagated as fatal per spec.md §7; the oracle has no retry policy.
var ErrOracleTransient = errors.New("oracle_transient")

// Config is the immutable subject configuration for a reduction run.
type Config struct {
	// SourcekitdPath is the sourcekitd dylib/so path (language-service mode).
	SourcekitdPath string
	// HelperPath is the in-tree helper binary that loads SourcekitdPath.
	HelperPath string
	// FrontendPath is the swift-frontend binary (front-end mode).
	FrontendPath string
	// PluginPath and ClientPluginPath are an optional paired plugin pair.
	PluginPath       string
	ClientPluginPath string
	// Predicate, if non-nil, overrides the default verdict rule.
	Predicate predicate.Expr
	// ScratchRoot is the parent directory under which each Oracle
	// instance creates its own uniquely named scratch directory.
	ScratchRoot string
}

// Oracle runs a subject subprocess for a RequestInfo. One Oracle owns one
// scratch directory for its lifetime; call Close to remove it.
type Oracle struct {
	cfg       Config
	scratch   string
	callIndex int
}

// New creates an Oracle with a fresh scratch directory under
// cfg.ScratchRoot, uniquely named so concurrent reductions never collide.
func New(cfg Config) (*Oracle, error) {
	scratch := filepath.Join(cfg.ScratchRoot, "swiftreduce-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating scratch directory: %v", ErrOracleTransient, err)
	}
	return &Oracle{cfg: cfg, scratch: scratch}, nil
}

// Close removes the scratch directory and everything in it.
func (o *Oracle) Close() error {
	return os.RemoveAll(o.scratch)
}

// Invoke serializes ri to scratch files and runs the subject, returning
// its verdict. ctx cancellation terminates the child process promptly.
// The source and request scratch files written for this call carry the
// call's index in their names and stay in the scratch directory until
// Close removes it.
func (o *Oracle) Invoke(ctx context.Context, ri *request.RequestInfo) (Result, error) {
	o.callIndex++
	sourcePath := filepath.Join(o.scratch, fmt.Sprintf("input-%d.swift", o.callIndex))

	requests, err := ri.Serialize(sourcePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: serializing request: %v", ErrOracleTransient, err)
	}

	var cmd *exec.Cmd
	if ri.IsFrontendMode() {
		cmd, err = o.buildFrontendCommand(ctx, ri, sourcePath)
	} else {
		cmd, err = o.buildHelperCommand(ctx, requests)
	}
	if err != nil {
		return Result{}, err
	}

	logging.OracleDebug("invoking subject: %s %v", cmd.Path, cmd.Args[1:])

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	exitCode, spawnErr := exitCodeOf(runErr)
	if spawnErr != nil {
		return Result{}, fmt.Errorf("%w: spawning subject: %v", ErrOracleTransient, spawnErr)
	}

	rec := predicate.Record{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
	result := o.classify(rec)
	logging.OracleDebug("verdict=%s exit_code=%v", result.Verdict, derefOrNil(exitCode))
	return result, nil
}

func (o *Oracle) classify(rec predicate.Record) Result {
	if o.cfg.Predicate != nil {
		if o.cfg.Predicate.Eval(rec) {
			return Result{Verdict: Reproduces}
		}
		return Result{Verdict: Error}
	}

	switch {
	case rec.ExitCode == nil:
		return Result{Verdict: Reproduces} // terminated by signal
	case *rec.ExitCode == 0:
		if !utf8.ValidString(rec.Stdout) {
			return Result{Verdict: Error}
		}
		return Result{Verdict: Success, Output: rec.Stdout}
	case *rec.ExitCode == 1:
		return Result{Verdict: Error}
	default:
		return Result{Verdict: Reproduces}
	}
}

func exitCodeOf(err error) (*int, error) {
	if err == nil {
		code := 0
		return &code, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return nil, nil // terminated by signal; no exit code
		}
		return &code, nil
	}
	return nil, err // failed to even start the process
}

func derefOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
