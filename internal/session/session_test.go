package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/kitchen/internal/store"
)

type snapshot struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func TestSession_TokenAndUserLifecycle(t *testing.T) {
	s := New(store.NewMemory())

	require.False(t, s.HasToken())
	require.False(t, s.HasUser())

	require.NoError(t, s.SetToken("T"))
	require.NoError(t, s.SaveUser(snapshot{ID: 1, Username: "ana"}))
	require.Equal(t, "T", s.Token())

	var got snapshot
	require.True(t, s.LoadUser(&got))
	require.Equal(t, snapshot{ID: 1, Username: "ana"}, got)

	require.NoError(t, s.Clear())
	require.False(t, s.HasToken())
	require.False(t, s.HasUser())
	require.False(t, s.LoadUser(&got))
}

func TestSession_SetTokenRejectsBlank(t *testing.T) {
	s := New(nil)
	require.Error(t, s.SetToken("   "))
	require.False(t, s.HasToken())
}

func TestSession_ClearKeepsLocale(t *testing.T) {
	s := New(store.NewMemory())
	require.NoError(t, s.SetLocale("de"))
	require.NoError(t, s.SetToken("T"))
	require.NoError(t, s.Clear())
	require.Equal(t, "de", s.Locale())
}

func TestSession_CorruptSnapshotReadsAsAbsent(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(UserKey, []byte("{not json")))
	s := New(mem)

	var got snapshot
	require.False(t, s.LoadUser(&got))
}
