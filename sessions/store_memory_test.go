package sessions_test

import (
	"testing"

	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := sessions.NewMemoryStore(nil)
	got, err := store.Get()
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, store.Set(sessions.Tokens{AccessToken: "abc", RefreshToken: "def"}))
	got, err = store.Get()
	require.NoError(t, err)
	require.Equal(t, "abc", got.AccessToken)

	got.AccessToken = "mutated"
	again, _ := store.Get()
	require.Equal(t, "abc", again.AccessToken)

	require.NoError(t, store.Clear())
	got, err = store.Get()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTokensEmpty(t *testing.T) {
	require.True(t, sessions.Tokens{}.Empty())
	require.False(t, sessions.Tokens{AccessToken: "a"}.Empty())
}
