// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deckport/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "deckport.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.BeginRun(types.PipelinePDF, "in", "out"))
	require.NoError(t, s.RecordExport(types.ExportRecord{
		Pipeline:      types.PipelinePDF,
		Source:        "in/deck.ppsm",
		Output:        "out/deck.pdf",
		Status:        types.ExportDone,
		ShapesRemoved: 2,
		Duration:      90 * time.Second,
	}))
	require.NoError(t, s.RecordExport(types.ExportRecord{
		Pipeline: types.PipelinePDF,
		Source:   "in/broken.ppsm",
		Output:   "out/broken.pdf",
		Status:   types.ExportFailed,
		Error:    "fallback save-as failed",
	}))

	entries, err := s.History(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "in/broken.ppsm", entries[0].Source)
	assert.Equal(t, types.ExportFailed, entries[0].Status)
	assert.Equal(t, "fallback save-as failed", entries[0].Error)

	assert.Equal(t, "in/deck.ppsm", entries[1].Source)
	assert.Equal(t, types.ExportDone, entries[1].Status)
	assert.Equal(t, 2, entries[1].ShapesRemoved)
	assert.Equal(t, 90*time.Second, entries[1].Duration)
	assert.Equal(t, types.PipelinePDF, entries[1].Pipeline)
	assert.False(t, entries[1].StartedAt.IsZero())
}

func TestStoreHistoryAcrossRuns(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.BeginRun(types.PipelineVideo, "in", "Videos"))
	require.NoError(t, s.RecordExport(types.ExportRecord{Source: "in/a.ppsm", Output: "Videos/a.mp4", Status: types.ExportDone}))

	require.NoError(t, s.BeginRun(types.PipelinePDF, "in", "Slides"))
	require.NoError(t, s.RecordExport(types.ExportRecord{Source: "in/a.ppsm", Output: "Slides/a.pdf", Status: types.ExportDone}))

	entries, err := s.History(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, types.PipelinePDF, entries[0].Pipeline)
	assert.Equal(t, types.PipelineVideo, entries[1].Pipeline)
	assert.NotEqual(t, entries[0].RunID, entries[1].RunID)
}

func TestStoreHistoryLimit(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.BeginRun(types.PipelineVideo, "in", "Videos"))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordExport(types.ExportRecord{
			Source: "in/deck.ppsm", Output: "Videos/deck.mp4", Status: types.ExportDone,
		}))
	}

	entries, err := s.History(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckport.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.BeginRun(types.PipelineVideo, "in", "out"))
	require.NoError(t, s.Close())

	// Reopening an existing database must not recreate or clobber the schema.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.History(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
