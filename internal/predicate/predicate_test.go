package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exitCode(n int) *int { return &n }

func TestEqualityOnStdout(t *testing.T) {
	expr, err := Parse(`stdout == "crash"`)
	require.NoError(t, err)
	assert.True(t, expr.Eval(Record{Stdout: "crash"}))
	assert.False(t, expr.Eval(Record{Stdout: "crashed"}))
}

func TestContainsOnStderr(t *testing.T) {
	expr, err := Parse(`stderr contains "Fatal error"`)
	require.NoError(t, err)
	assert.True(t, expr.Eval(Record{Stderr: "some noise\nFatal error: index out of range\n"}))
	assert.False(t, expr.Eval(Record{Stderr: "clean exit"}))
}

func TestCaseInsensitiveContains(t *testing.T) {
	expr, err := Parse(`stderr ~= "fatal error"`)
	require.NoError(t, err)
	assert.True(t, expr.Eval(Record{Stderr: "FATAL ERROR: boom"}))
}

func TestExitCodeEquality(t *testing.T) {
	expr, err := Parse(`exit_code == 139`)
	require.NoError(t, err)
	assert.True(t, expr.Eval(Record{ExitCode: exitCode(139)}))
	assert.False(t, expr.Eval(Record{ExitCode: exitCode(0)}))
	assert.False(t, expr.Eval(Record{ExitCode: nil}))
}

func TestAndOrNotWithParens(t *testing.T) {
	expr, err := Parse(`(stderr contains "crash" OR exit_code == 11) AND NOT stdout contains "skipped"`)
	require.NoError(t, err)

	assert.True(t, expr.Eval(Record{Stderr: "crash detected", Stdout: ""}))
	assert.True(t, expr.Eval(Record{ExitCode: exitCode(11)}))
	assert.False(t, expr.Eval(Record{Stderr: "crash detected", Stdout: "skipped this one"}))
	assert.False(t, expr.Eval(Record{Stderr: "all good", ExitCode: exitCode(0)}))
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse(`bogus == "x"`)
	assert.Error(t, err)
}

func TestParseRejectsMissingOperator(t *testing.T) {
	_, err := Parse(`stdout "x"`)
	assert.Error(t, err)
}

func TestParseRejectsUnterminatedParen(t *testing.T) {
	_, err := Parse(`(stdout == "x"`)
	assert.Error(t, err)
}

func TestParseRejectsTrailingTokens(t *testing.T) {
	_, err := Parse(`stdout == "x" stdout == "y"`)
	assert.Error(t, err)
}
