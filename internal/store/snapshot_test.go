package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

func openTestSnapshots(t *testing.T) *Snapshots {
	t.Helper()
	s, err := OpenSnapshots(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestSnapshots(t)

	// First launch: nothing stored, not an error.
	snap, err := s.LoadSnapshot()
	require.NoError(t, err)
	require.Nil(t, snap)

	in := models.AuthSnapshot{
		IsAuthenticated: true,
		LoginName:       "runner",
		RegisteredUser:  &models.RegisteredUser{Name: "runner", Email: "r@x.io", Password: "hash"},
		Balance:         1200,
		AvatarRef:       "trophy",
	}
	require.NoError(t, s.SaveSnapshot(in))

	snap, err = s.LoadSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, in, *snap)

	// Overwrites keep the single-key contract.
	in.Balance = 700
	require.NoError(t, s.SaveSnapshot(in))
	snap, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(700), snap.Balance)

	require.NoError(t, s.ClearSnapshot())
	snap, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRawKeyValueContract(t *testing.T) {
	s := openTestSnapshots(t)

	_, err := s.Get("other")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("other", []byte("blob")))
	raw, err := s.Get("other")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), raw)

	require.NoError(t, s.Delete("other"))
	require.NoError(t, s.Delete("other")) // absent key is fine
	_, err = s.Get("other")
	require.ErrorIs(t, err, ErrNotFound)
}
