package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunStore_AppendAndRecent(t *testing.T) {
	store, err := NewRunStore(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(t.Context(), Run{
			Collection: "col-1",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			Duration:   90 * time.Second,
			Documents:  10 + i,
			Status:     RunSucceeded,
			OutputPath: "out.html",
		}))
	}
	require.NoError(t, store.Append(t.Context(), Run{
		Collection: "col-other",
		StartedAt:  base,
		Status:     RunFailed,
		Message:    "boom",
	}))

	runs, err := store.Recent(t.Context(), "col-1", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, 12, runs[0].Documents, "newest first")
	require.Equal(t, RunSucceeded, runs[0].Status)
	require.Equal(t, 90*time.Second, runs[0].Duration)
}

func TestRunStore_RecentEmpty(t *testing.T) {
	store, err := NewRunStore(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	runs, err := store.Recent(t.Context(), "nothing", 10)
	require.NoError(t, err)
	require.Empty(t, runs)
}
