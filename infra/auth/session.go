package auth

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/skypointsocial/skypoint/domain"
)

// Persisted keys.
const (
	KeyToken        = "token"
	KeyUser         = "user"
	KeySessionID    = "sessionId"
	KeySessionStart = "sessionStartTime"
)

var persistedKeys = []string{KeyToken, KeyUser, KeySessionID, KeySessionStart}

// Storage is the persistence the session store writes through to.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Session is a point-in-time copy of the store.
type Session struct {
	User          domain.User
	Token         string
	Authenticated bool
	Loading       bool
	Error         string
	SessionID     string
	StartedAt     time.Time
}

// Store is the process-wide session. It is safe for concurrent use because
// Bubble Tea commands read the token from their own goroutines.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu      sync.RWMutex
	session Session
}

// NewStore creates an unauthenticated store. Call Hydrate once at startup.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, logger: logger}
}

// Hydrate restores a persisted session. A corrupt stored user purges every
// persisted auth key and leaves the store unauthenticated.
func (s *Store) Hydrate() {
	token, hasToken := s.storage.Get(KeyToken)
	rawUser, hasUser := s.storage.Get(KeyUser)
	if !hasToken || !hasUser || token == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Authenticated {
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("discarding unreadable stored user", slog.String("error", err.Error()))
		if err := s.storage.Remove(persistedKeys...); err != nil {
			s.logger.Error("purging stored session", slog.String("error", err.Error()))
		}
		return
	}

	s.session.User = user
	s.session.Token = token
	s.session.Authenticated = true
	s.session.SessionID, _ = s.storage.Get(KeySessionID)
	if raw, ok := s.storage.Get(KeySessionStart); ok {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			s.session.StartedAt = time.UnixMilli(ms)
		}
	}
	s.logger.Info("session restored", slog.String("user_id", user.ID))
}

// SetCredentials stores user and token, marks the session authenticated and
// writes both through to storage.
func (s *Store) SetCredentials(user domain.User, token string) {
	s.mu.Lock()
	s.session.User = user
	s.session.Token = token
	s.session.Authenticated = true
	s.session.Loading = false
	s.session.Error = ""
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("encoding session user", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Set(KeyUser, string(data)); err != nil {
		s.logger.Error("persisting session user", slog.String("error", err.Error()))
	}
	if token != "" {
		if err := s.storage.Set(KeyToken, token); err != nil {
			s.logger.Error("persisting session token", slog.String("error", err.Error()))
		}
	}
}

// BeginSession records the server session id and local start time.
func (s *Store) BeginSession(sessionID string, start time.Time) {
	s.mu.Lock()
	s.session.SessionID = sessionID
	s.session.StartedAt = start
	s.mu.Unlock()

	if sessionID != "" {
		if err := s.storage.Set(KeySessionID, sessionID); err != nil {
			s.logger.Error("persisting session id", slog.String("error", err.Error()))
		}
	}
	if err := s.storage.Set(KeySessionStart, strconv.FormatInt(start.UnixMilli(), 10)); err != nil {
		s.logger.Error("persisting session start", slog.String("error", err.Error()))
	}
}

// Logout clears the session in memory and on disk.
func (s *Store) Logout() {
	s.mu.Lock()
	userID := s.session.User.ID
	s.session = Session{}
	s.mu.Unlock()

	if err := s.storage.Remove(persistedKeys...); err != nil {
		s.logger.Error("clearing stored session", slog.String("error", err.Error()))
	}
	s.logger.Info("logged out", slog.String("user_id", userID))
}

// SetLoading flags an auth request in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.session.Loading = loading
	s.mu.Unlock()
}

// SetError records the last auth error message.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.session.Error = msg
	s.session.Loading = false
	s.mu.Unlock()
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Authenticated reports whether a user is signed in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

// AccessToken implements TokenProvider. It never fails; an empty token means
// no Authorization header.
func (s *Store) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token, nil
}

// CurrentUser returns the signed-in user, or the zero User.
func (s *Store) CurrentUser() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}
