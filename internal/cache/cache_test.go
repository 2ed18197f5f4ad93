package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchemaAndInsertedRunRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "runs.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.InsertRun(Run{
		StartedAt:       1000,
		InitialByteSize: 500,
		FinalByteSize:   120,
		InitialArgCount: 10,
		FinalArgCount:   2,
		Outcome:         "success",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "success", runs[0].Outcome)
	assert.Equal(t, 120, runs[0].FinalByteSize)
}

func TestListRunsOrdersMostRecentFirstAndRespectsLimit(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	for i, ts := range []int64{100, 300, 200} {
		_, err := store.InsertRun(Run{StartedAt: ts, Outcome: "success", InitialByteSize: i})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(300), runs[0].StartedAt)
	assert.Equal(t, int64(200), runs[1].StartedAt)
}

func TestOpenReopensExistingDatabaseWithoutError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	store1, err := Open(path)
	require.NoError(t, err)
	_, err = store1.InsertRun(Run{StartedAt: 1, Outcome: "success"})
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	store2, err := Open(path)
	require.NoError(t, err)
	defer store2.Close()

	runs, err := store2.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
