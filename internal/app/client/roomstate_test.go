package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileState(t *testing.T) {
	state := NewFileState(filepath.Join(t.TempDir(), "room"))

	code, err := state.ActiveRoom()
	require.NoError(t, err)
	assert.Empty(t, code)

	require.NoError(t, state.SetActiveRoom("ABCD2345"))
	code, err = state.ActiveRoom()
	require.NoError(t, err)
	assert.Equal(t, "ABCD2345", code)

	require.NoError(t, state.ClearActiveRoom())
	code, err = state.ActiveRoom()
	require.NoError(t, err)
	assert.Empty(t, code)

	// Clearing twice is fine.
	require.NoError(t, state.ClearActiveRoom())
}
