// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestRecordAndRecent(t *testing.T) {
	h := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := h.Record(ctx, Run{
			ID:         string(rune('a' + i)),
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 10*time.Second),
			Graphs:     i + 1,
			Components: (i + 1) * 2,
			Outcome:    OutcomeSuccess,
		})
		require.NoError(t, err)
	}

	runs, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, 3, runs[0].Graphs)
	assert.Equal(t, base.Add(2*time.Minute), runs[0].StartedAt)
}

func TestRecent_DefaultLimit(t *testing.T) {
	h := openTestDB(t)
	runs, err := h.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecord_FailureRun(t *testing.T) {
	h := openTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, h.Record(ctx, Run{
		ID:         "r1",
		StartedAt:  now,
		FinishedAt: now,
		Outcome:    OutcomeFailure,
		Error:      "store scan failed",
	}))

	runs, err := h.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeFailure, runs[0].Outcome)
	assert.Equal(t, "store scan failed", runs[0].Error)
}

func TestPing(t *testing.T) {
	h := openTestDB(t)
	assert.NoError(t, h.Ping(context.Background()))
}
