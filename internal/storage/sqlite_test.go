package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/road"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should be created with its parent dirs")
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	runs := []road.MemoryState{
		{CarryingCount: 1, DistanceTraveled: 120, CurrentSpeed: 0.76},
		{HungerCount: 7, DistanceTraveled: 900, CurrentSpeed: 1.1},
		{DisciplineCount: 3, DistanceTraveled: 450, CurrentSpeed: 0.8},
	}
	var ids []string
	for _, m := range runs {
		id, err := store.SaveRun(ctx, "", m)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Len(t, ids[0], 26, "ULID string length")
	assert.NotEqual(t, ids[0], ids[1])

	best, err := store.BestRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, best, 3)
	assert.Equal(t, 900.0, best[0].Distance)
	assert.Equal(t, 450.0, best[1].Distance)
	assert.Equal(t, 120.0, best[2].Distance)
	assert.Equal(t, "storm", best[0].Mood)
	assert.Equal(t, 7, best[0].Hunger)
	assert.False(t, best[0].CreatedAt.IsZero())

	recent, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
}

func TestStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	runs, err := store.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Runs)
	assert.True(t, stats.LastPlayed.IsZero())
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Push(ctx, road.SyncRecord{RunID: "run-a", Memory: road.MemoryState{CarryingCount: 2, HungerCount: 1, DistanceTraveled: 100}}))
	require.NoError(t, store.Push(ctx, road.SyncRecord{RunID: "run-b", Memory: road.MemoryState{DisciplineCount: 4, DistanceTraveled: 300}}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Runs)
	assert.Equal(t, 300.0, stats.BestDistance)
	assert.Equal(t, 400.0, stats.TotalDistance)
	assert.Equal(t, 2, stats.Carrying)
	assert.Equal(t, 4, stats.Discipline)
	assert.Equal(t, 1, stats.Hunger)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestStoreClearRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.SaveRun(ctx, "", road.MemoryState{DistanceTraveled: 10})
	require.NoError(t, err)
	require.NoError(t, store.ClearRuns(ctx))

	runs, err := store.BestRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStorePersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store1.SaveRun(ctx, "", road.MemoryState{DistanceTraveled: 77})
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	store2, err := Open(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	runs, err := store2.BestRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 77.0, runs[0].Distance)
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.road/test.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".road", "test.db"))
	assert.NoError(t, err)
}

func TestStoreKeepsOneRowPerRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, d := range []float64{500, 1000, 1141} {
		id, err := store.SaveRun(ctx, "run-a", road.MemoryState{HungerCount: int(d) / 100, DistanceTraveled: d})
		require.NoError(t, err)
		assert.Equal(t, "run-a", id)
	}
	// A stale snapshot arriving late does not roll the run back
	_, err := store.SaveRun(ctx, "run-a", road.MemoryState{DistanceTraveled: 800})
	require.NoError(t, err)

	best, err := store.BestRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, 1141.0, best[0].Distance)
	assert.Equal(t, 11, best[0].Hunger)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 1141.0, stats.TotalDistance)
}

func TestStoreArchivesControllerAsOneRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	sink := &storeSink{store: store}

	ctrl := road.NewController(road.Options{
		Config: config.DefaultRoadConfig(),
		Random: road.NewSeededSource(1),
		Sink:   sink,
	})
	ctrl.Wake()
	start := time.Unix(0, 0)
	for i := 0; i < 7200; i++ {
		ctrl.Tick(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	ctrl.Close()
	require.NoError(t, sink.err)
	require.Greater(t, sink.calls, 1, "a long run should sync more than once")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Runs)
	assert.InDelta(t, ctrl.Memory().DistanceTraveled, stats.TotalDistance, 1e-9)
	assert.InDelta(t, ctrl.Memory().DistanceTraveled, stats.BestDistance, 1e-9)
}

// storeSink archives records synchronously.
type storeSink struct {
	store *Store
	calls int
	err   error
}

func (s *storeSink) Sync(rec road.SyncRecord) {
	s.calls++
	if err := s.store.Push(context.Background(), rec); err != nil && s.err == nil {
		s.err = err
	}
}
