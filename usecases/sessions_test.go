package usecases

import (
	"testing"
	"time"

	"feedback-server/cache"
	"feedback-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionEnv(ttl time.Duration) (*SessionUseCase, *memSessionRepo) {
	repo := newMemSessionRepo()
	return NewSessionUseCase(repo, cache.NewSessionCache(), ttl), repo
}

func TestSessionBindResolve(t *testing.T) {
	uc, _ := newSessionEnv(time.Hour)

	token, err := uc.Bind("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, ok := uc.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "alice", username)
}

func TestSessionResolveUnknownToken(t *testing.T) {
	uc, _ := newSessionEnv(time.Hour)

	_, ok := uc.Resolve("no-such-token")
	assert.False(t, ok)
	_, ok = uc.Resolve("")
	assert.False(t, ok)
}

func TestSessionResolveExpired(t *testing.T) {
	uc, repo := newSessionEnv(time.Hour)

	expired := &entities.Session{
		Username:  "alice",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(expired))

	_, ok := uc.Resolve(expired.Token)
	assert.False(t, ok)
}

func TestSessionResolveUsesCache(t *testing.T) {
	uc, repo := newSessionEnv(time.Hour)

	token, err := uc.Bind("alice")
	require.NoError(t, err)

	// A fresh use case over the same store simulates a process that has
	// not cached the token yet.
	cold := NewSessionUseCase(repo, cache.NewSessionCache(), time.Hour)

	_, ok := cold.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, 1, repo.getCalls)

	_, ok = cold.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, 1, repo.getCalls, "second resolve should be served from cache")
}

func TestSessionClear(t *testing.T) {
	uc, _ := newSessionEnv(time.Hour)

	token, err := uc.Bind("alice")
	require.NoError(t, err)
	require.NoError(t, uc.Clear(token))

	_, ok := uc.Resolve(token)
	assert.False(t, ok)
}

func TestSessionClearUser(t *testing.T) {
	uc, _ := newSessionEnv(time.Hour)

	first, err := uc.Bind("alice")
	require.NoError(t, err)
	second, err := uc.Bind("alice")
	require.NoError(t, err)
	other, err := uc.Bind("bob")
	require.NoError(t, err)

	require.NoError(t, uc.ClearUser("alice"))

	_, ok := uc.Resolve(first)
	assert.False(t, ok)
	_, ok = uc.Resolve(second)
	assert.False(t, ok)

	username, ok := uc.Resolve(other)
	require.True(t, ok)
	assert.Equal(t, "bob", username)
}

func TestSessionSweep(t *testing.T) {
	uc, repo := newSessionEnv(time.Hour)

	live, err := uc.Bind("alice")
	require.NoError(t, err)

	expired := &entities.Session{
		Username:  "bob",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(expired))

	removed, err := uc.Sweep()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok := uc.Resolve(live)
	assert.True(t, ok)
	_, ok = uc.Resolve(expired.Token)
	assert.False(t, ok)
}
