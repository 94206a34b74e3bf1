package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/AJMerr/playcore/internal/errors"
)

func TestState_Lifecycle(t *testing.T) {
	var s State
	assert.Equal(t, Disconnected, s.Status)

	s, err := s.Begin("tok")
	require.NoError(t, err)
	assert.Equal(t, AwaitingFinalization, s.Status)
	assert.Equal(t, "tok", s.Token)

	s, err = s.Confirm(Session{Name: "rj", Key: "abc123"})
	require.NoError(t, err)
	assert.True(t, s.IsConnected())
	assert.Equal(t, "abc123", s.Session.Key)
	assert.Empty(t, s.Token)

	s, err = s.SignOut()
	require.NoError(t, err)
	assert.Equal(t, NewDisconnected(), s)
}

func TestState_InvalidTransitions(t *testing.T) {
	t.Run("confirm while disconnected", func(t *testing.T) {
		s, err := NewDisconnected().Confirm(Session{Key: "k"})
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidTransition))
		assert.Equal(t, Disconnected, s.Status)
	})

	t.Run("begin while connected", func(t *testing.T) {
		s, err := NewConnected(Session{Key: "k"}).Begin("tok")
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidTransition))
		assert.True(t, s.IsConnected())
	})

	t.Run("sign out while disconnected", func(t *testing.T) {
		_, err := NewDisconnected().SignOut()
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidTransition))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := NewDisconnected().Begin("")
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))
	})

	t.Run("confirm without key", func(t *testing.T) {
		s, err := NewAwaiting("tok").Confirm(Session{Name: "rj"})
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))
		assert.Equal(t, AwaitingFinalization, s.Status)
	})

	t.Run("sign out cancels pending link", func(t *testing.T) {
		s, err := NewAwaiting("tok").SignOut()
		require.NoError(t, err)
		assert.Equal(t, Disconnected, s.Status)
	})
}
