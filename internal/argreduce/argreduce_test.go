package argreduce

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftreduce/internal/oracle"
	"swiftreduce/internal/request"
)

// keyedFakeOracle reproduces iff a required argument is present in
// CompilerArgs, mirroring the mock oracles in spec.md §8's concrete
// scenarios.
type keyedFakeOracle struct {
	required string
}

func (f *keyedFakeOracle) Invoke(_ context.Context, ri *request.RequestInfo) (oracle.Result, error) {
	for _, a := range ri.CompilerArgs {
		if a == f.required {
			return oracle.Result{Verdict: oracle.Reproduces}, nil
		}
	}
	return oracle.Result{Verdict: oracle.Error}, nil
}

func TestReduceArgumentShrinkScenario(t *testing.T) {
	ri := &request.RequestInfo{
		CompilerArgs: []string{"-a", "-b", "junk1", "-F", "/p", "junk2"},
	}

	result, err := Reduce(context.Background(), &keyedFakeOracle{required: "-a"}, ri, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-a"}, result.CompilerArgs)
}

func TestReduceExtendsWindowForCrossToolPrefix(t *testing.T) {
	// "-Xcc" pairs with its following value; the oracle only cares
	// about "-a" being present, so removing "-Xcc foo" together or
	// separately converges to the same final list either way, but the
	// paired-flag safety property requires -Xcc never be left dangling
	// without its value once the value is gone.
	ri := &request.RequestInfo{
		CompilerArgs: []string{"-a", "-Xcc", "-DFOO=1"},
	}

	result, err := Reduce(context.Background(), &keyedFakeOracle{required: "-a"}, ri, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-a"}, result.CompilerArgs)
	assert.False(t, slices.Contains(result.CompilerArgs, "-Xcc"))
}

func TestReduceEmptyArgsIsNoOp(t *testing.T) {
	ri := &request.RequestInfo{CompilerArgs: nil}
	result, err := Reduce(context.Background(), &keyedFakeOracle{required: "-a"}, ri, nil)
	require.NoError(t, err)
	assert.Empty(t, result.CompilerArgs)
}

func TestReduceReportsMonotonicProgress(t *testing.T) {
	ri := &request.RequestInfo{
		CompilerArgs: []string{"-a", "x1", "x2", "x3"},
	}

	var fractions []float64
	_, err := Reduce(context.Background(), &keyedFakeOracle{required: "-a"}, ri, func(f float64, _ string) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	require.NotEmpty(t, fractions)
	for _, f := range fractions {
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}
