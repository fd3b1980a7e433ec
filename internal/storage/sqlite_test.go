package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenIsolated(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	_, err := a.StartRun("pixelart")
	require.NoError(t, err)

	runs, err := b.Runs("", 10)
	require.NoError(t, err)
	assert.Empty(t, runs, "each store must be its own database")
}

func TestStoreStartRun(t *testing.T) {
	store := openStore(t)

	run, err := store.StartRun("orientation")
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err, "run id should be a UUID")
	assert.Equal(t, "orientation", run.GameID)
	assert.False(t, run.StartedAt.IsZero())

	runs, err := store.Runs("orientation", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.False(t, runs[0].Finished)
}

func TestStoreRecordResultUpserts(t *testing.T) {
	store := openStore(t)
	run, err := store.StartRun("pixelart")
	require.NoError(t, err)

	require.NoError(t, store.RecordResult(Result{RunID: run.ID, Key: "level-2", Label: "Vaso", Score: 40}))
	require.NoError(t, store.RecordResult(Result{RunID: run.ID, Key: "level-1", Label: "Bandera", Score: 100}))
	require.NoError(t, store.RecordResult(Result{RunID: run.ID, Key: "level-2", Label: "Vaso", Score: 85, Detail: "C:1"}))

	results, err := store.Results(run.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The re-checked level keeps its first position with the new score.
	assert.Equal(t, "level-2", results[0].Key)
	assert.Equal(t, 85, results[0].Score)
	assert.Equal(t, "C:1", results[0].Detail)
	assert.Equal(t, "level-1", results[1].Key)
	assert.Equal(t, 100, results[1].Score)
}

func TestStoreRecordResultErrors(t *testing.T) {
	store := openStore(t)

	err := store.RecordResult(Result{RunID: "nope", Key: "level-1"})
	assert.ErrorIs(t, err, ErrUnknownRun)

	run, err := store.StartRun("pixelart")
	require.NoError(t, err)
	assert.Error(t, store.RecordResult(Result{RunID: run.ID}))
}

func TestStoreResultsScopedToRun(t *testing.T) {
	store := openStore(t)
	a, _ := store.StartRun("pixelart")
	b, _ := store.StartRun("pixelart")

	require.NoError(t, store.RecordResult(Result{RunID: a.ID, Key: "level-1", Score: 10}))
	require.NoError(t, store.RecordResult(Result{RunID: b.ID, Key: "level-1", Score: 90}))

	ra, err := store.Results(a.ID)
	require.NoError(t, err)
	require.Len(t, ra, 1)
	assert.Equal(t, 10, ra[0].Score)
}

func TestStoreFinishRunAndStats(t *testing.T) {
	store := openStore(t)

	best, err := store.BestScore("orientation")
	require.NoError(t, err)
	assert.Equal(t, 0, best)

	for _, score := range []int{3, 7, 5} {
		run, err := store.StartRun("orientation")
		require.NoError(t, err)
		require.NoError(t, store.FinishRun(run.ID, score))
	}
	// An unfinished run does not count.
	_, err = store.StartRun("orientation")
	require.NoError(t, err)

	best, err = store.BestScore("orientation")
	require.NoError(t, err)
	assert.Equal(t, 7, best)

	stats, err := store.GameStats("orientation")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.RunsCount)
	assert.Equal(t, 7, stats.BestScore)
	assert.InDelta(t, 5.0, stats.AvgScore, 1e-9)

	assert.ErrorIs(t, store.FinishRun("missing", 1), ErrUnknownRun)
}

func TestStoreRunsOrderAndLimit(t *testing.T) {
	store := openStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		run, err := store.StartRun("pixelart")
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}
	_, err := store.StartRun("orientation")
	require.NoError(t, err)

	runs, err := store.Runs("pixelart", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[4], runs[0].ID, "newest first")
	assert.Equal(t, ids[2], runs[2].ID)

	all, err := store.Runs("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestStoreRunLookup(t *testing.T) {
	store := openStore(t)

	run, err := store.StartRun("pixelart")
	require.NoError(t, err)

	got, err := store.Run(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "pixelart", got.GameID)
	assert.False(t, got.Finished)

	require.NoError(t, store.FinishRun(run.ID, 250))
	got, err = store.Run(run.ID)
	require.NoError(t, err)
	assert.True(t, got.Finished)
	assert.Equal(t, 250, got.Score)
	assert.False(t, got.FinishedAt.IsZero())

	_, err = store.Run(uuid.NewString())
	assert.ErrorIs(t, err, ErrUnknownRun)
}
