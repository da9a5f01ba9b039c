package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStateSeen(t *testing.T) {
	state := &LocalState{}

	assert.False(t, state.HasSeen("project1", "work"))
	assert.True(t, state.MarkSeen("project1", "work"))
	assert.True(t, state.HasSeen("project1", "work"))

	// Marking again is a no-op.
	assert.False(t, state.MarkSeen("project1", "work"))
	assert.Len(t, state.Seen, 1)

	assert.True(t, state.MarkSeen("project1", "home"))
	assert.False(t, state.HasSeen("project2", "work"))
}

func TestLocalStateRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Nothing saved yet: empty state, no error.
	state, err := LoadLocalState()
	require.NoError(t, err)
	assert.Empty(t, state.Repo)
	assert.Empty(t, state.Seen)

	state.Repo = "git@gitlab.com:someone/checkstate-info.git"
	state.MarkSeen("project1", "work")
	require.NoError(t, SaveLocalState(state))

	loaded, err := LoadLocalState()
	require.NoError(t, err)
	assert.Equal(t, state.Repo, loaded.Repo)
	assert.True(t, loaded.HasSeen("project1", "work"))
}
