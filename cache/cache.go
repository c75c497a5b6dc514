package cache

import (
	"sync"
	"time"
)

type SessionEntry struct {
	Username  string
	ExpiresAt time.Time
}

// SessionCache is a write-through cache in front of the sessions table
// so routine requests resolve their cookie without a database read.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]SessionEntry // token -> entry
	hits    uint64
	misses  uint64
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]SessionEntry)}
}

// Put stores or refreshes a session entry.
func (sc *SessionCache) Put(token, username string, expiresAt time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.entries[token] = SessionEntry{Username: username, ExpiresAt: expiresAt}
}

// Get looks up a token. Expired entries count as misses; they are left
// in place for Prune to collect.
func (sc *SessionCache) Get(token string) (SessionEntry, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	entry, ok := sc.entries[token]
	if !ok || !time.Now().Before(entry.ExpiresAt) {
		sc.misses++
		return SessionEntry{}, false
	}
	sc.hits++
	return entry, true
}

// Delete removes a single token.
func (sc *SessionCache) Delete(token string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.entries, token)
}

// DeleteUser removes every token bound to a username.
func (sc *SessionCache) DeleteUser(username string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for token, entry := range sc.entries {
		if entry.Username == username {
			delete(sc.entries, token)
		}
	}
}

// Prune drops entries expired as of now and returns how many went.
func (sc *SessionCache) Prune(now time.Time) int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	pruned := 0
	for token, entry := range sc.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(sc.entries, token)
			pruned++
		}
	}
	return pruned
}

// Stats returns statistics about the current cache
func (sc *SessionCache) Stats() map[string]interface{} {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return map[string]interface{}{
		"sessions": len(sc.entries),
		"hits":     sc.hits,
		"misses":   sc.misses,
	}
}
