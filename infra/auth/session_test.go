package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypointsocial/skypoint/domain"
)

type memStorage struct {
	values  map[string]string
	failSet bool
}

func newMemStorage() *memStorage { return &memStorage{values: map[string]string{}} }

func (m *memStorage) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memStorage) Set(key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.values[key] = value
	return nil
}

func (m *memStorage) Remove(keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestStore_SetCredentialsPersistsAndAuthenticates(t *testing.T) {
	st := newMemStorage()
	s := NewStore(st, quietLogger())
	user := domain.User{ID: "u1", Username: "ada", Email: "ada@example.com"}

	s.SetCredentials(user, "tok")
	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, "ada", s.CurrentUser().Username)

	tok, err := s.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	assert.Equal(t, "tok", st.values[KeyToken])
	var stored domain.User
	require.NoError(t, json.Unmarshal([]byte(st.values[KeyUser]), &stored))
	assert.Equal(t, "ada", stored.Username)
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	st := newMemStorage()
	s := NewStore(st, quietLogger())
	s.SetCredentials(domain.User{ID: "u1"}, "tok")
	s.BeginSession("sess-1", time.UnixMilli(1700000000000))
	require.Len(t, st.values, 4)

	s.Logout()
	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.Token)
	assert.Empty(t, st.values)
	assert.Empty(t, s.CurrentUser().ID)
	tok, _ := s.AccessToken()
	assert.Empty(t, tok)
}

func TestStore_HydrateRestoresSession(t *testing.T) {
	st := newMemStorage()
	st.values[KeyToken] = "tok"
	st.values[KeyUser] = `{"id":"u1","username":"ada"}`
	st.values[KeySessionID] = "sess-1"
	st.values[KeySessionStart] = "1700000000000"

	s := NewStore(st, quietLogger())
	s.Hydrate()
	snap := s.Snapshot()
	require.True(t, snap.Authenticated)
	assert.Equal(t, "ada", snap.User.Username)
	assert.Equal(t, "sess-1", snap.SessionID)
	assert.Equal(t, int64(1700000000000), snap.StartedAt.UnixMilli())
}

func TestStore_HydrateCorruptUserFailsSoft(t *testing.T) {
	st := newMemStorage()
	st.values[KeyToken] = "tok"
	st.values[KeyUser] = "{not json"
	st.values[KeySessionID] = "sess-1"

	s := NewStore(st, quietLogger())
	require.NotPanics(t, s.Hydrate)
	assert.False(t, s.Authenticated())
	assert.Empty(t, st.values, "all persisted auth keys must be purged")
}

func TestStore_HydrateNeedsTokenAndUser(t *testing.T) {
	st := newMemStorage()
	st.values[KeyToken] = "tok"
	s := NewStore(st, quietLogger())
	s.Hydrate()
	assert.False(t, s.Authenticated())
	assert.Equal(t, "tok", st.values[KeyToken], "partial state is left alone")
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	st := newMemStorage()
	st.failSet = true
	s := NewStore(st, quietLogger())
	s.SetCredentials(domain.User{ID: "u1"}, "tok")
	assert.True(t, s.Authenticated())
}

func TestStore_LoadingAndError(t *testing.T) {
	s := NewStore(newMemStorage(), quietLogger())
	s.SetLoading(true)
	assert.True(t, s.Snapshot().Loading)
	s.SetError("bad credentials")
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "bad credentials", snap.Error)
}
