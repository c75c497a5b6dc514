package usecases

import (
	"feedback-server/cache"
	"feedback-server/entities"
	"feedback-server/repositories"
	"time"
)

// SessionUseCase is the session manager: it binds a username to a fresh
// token on login or registration and resolves tokens back to usernames
// for the authorization gate. Sessions persist in the database and are
// mirrored in an in-memory cache.
type SessionUseCase struct {
	SessionRepo repositories.SessionRepository
	Cache       *cache.SessionCache
	TTL         time.Duration
}

func NewSessionUseCase(sessionRepo repositories.SessionRepository, sessionCache *cache.SessionCache, ttl time.Duration) *SessionUseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionUseCase{
		SessionRepo: sessionRepo,
		Cache:       sessionCache,
		TTL:         ttl,
	}
}

// Bind creates a session for username and returns its token.
func (uc *SessionUseCase) Bind(username string) (string, error) {
	if username == "" {
		return "", newFieldError("username", "username is required")
	}
	session := &entities.Session{
		Username:  username,
		ExpiresAt: time.Now().Add(uc.TTL),
	}
	if err := uc.SessionRepo.Create(session); err != nil {
		return "", err
	}
	uc.Cache.Put(session.Token, session.Username, session.ExpiresAt)
	return session.Token, nil
}

// Resolve maps a token to the authenticated username. Unknown and
// expired tokens both resolve to not-authenticated.
func (uc *SessionUseCase) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if entry, ok := uc.Cache.Get(token); ok {
		return entry.Username, true
	}
	session, err := uc.SessionRepo.GetByToken(token)
	if err != nil {
		return "", false
	}
	if session.Expired(time.Now()) {
		return "", false
	}
	uc.Cache.Put(session.Token, session.Username, session.ExpiresAt)
	return session.Username, true
}

// Clear destroys a single session (logout).
func (uc *SessionUseCase) Clear(token string) error {
	if token == "" {
		return nil
	}
	uc.Cache.Delete(token)
	return uc.SessionRepo.Delete(token)
}

// ClearUser destroys every session for a username (account deletion).
func (uc *SessionUseCase) ClearUser(username string) error {
	uc.Cache.DeleteUser(username)
	return uc.SessionRepo.DeleteByUsername(username)
}

// Sweep removes expired sessions from the store and the cache and
// returns how many rows were deleted.
func (uc *SessionUseCase) Sweep() (int64, error) {
	now := time.Now()
	uc.Cache.Prune(now)
	return uc.SessionRepo.DeleteExpired(now)
}

// CacheStats exposes cache counters for the health endpoint.
func (uc *SessionUseCase) CacheStats() map[string]interface{} {
	return uc.Cache.Stats()
}
