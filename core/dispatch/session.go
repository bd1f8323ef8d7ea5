package dispatch

import "sync"

// sessionKey scopes a cached ranking to one admin session and one trip.
type sessionKey struct {
	Session string
	TripID  int64
}

// SessionCache holds ranked candidate lists between the moment an admin sees
// them and the moment they pick one. It is owned by the caller layer and
// passed explicitly; the engine only invalidates entries when a trip is
// committed.
type SessionCache struct {
	mu      sync.Mutex
	entries map[sessionKey][]Candidate
}

// NewSessionCache creates an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{entries: map[sessionKey][]Candidate{}}
}

// Put stores the ranked candidates for a (session, trip) pair, replacing any
// previous entry.
func (c *SessionCache) Put(sessionID string, tripID int64, cands []Candidate) {
	c.mu.Lock()
	c.entries[sessionKey{sessionID, tripID}] = cands
	c.mu.Unlock()
}

// Candidate returns the idx-th cached candidate. A missing entry or an
// out-of-range index means the session expired.
func (c *SessionCache) Candidate(sessionID string, tripID int64, idx int) (Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cands, ok := c.entries[sessionKey{sessionID, tripID}]
	if !ok || idx < 0 || idx >= len(cands) {
		return Candidate{}, ErrStaleSession
	}
	return cands[idx], nil
}

// InvalidateTrip drops every session's entry for the trip. Called after the
// trip is committed so stale rankings cannot be acted upon.
func (c *SessionCache) InvalidateTrip(tripID int64) {
	c.mu.Lock()
	for k := range c.entries {
		if k.TripID == tripID {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// ClearSession drops all entries of one session.
func (c *SessionCache) ClearSession(sessionID string) {
	c.mu.Lock()
	for k := range c.entries {
		if k.Session == sessionID {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}
