package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/store"
)

func TestSessionCacheLookup(t *testing.T) {
	c := NewSessionCache()
	c.Put("s1", 1, []Candidate{{Driver: model.Driver{ID: "d1"}}, {Driver: model.Driver{ID: "d2"}}})

	cand, err := c.Candidate("s1", 1, 1)
	if err != nil {
		t.Fatalf("candidate: %v", err)
	}
	if cand.Driver.ID != "d2" {
		t.Fatalf("wrong candidate: %+v", cand)
	}

	if _, err := c.Candidate("s1", 1, 5); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("out-of-range index should be stale, got %v", err)
	}
	if _, err := c.Candidate("s2", 1, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("unknown session should be stale, got %v", err)
	}
	if _, err := c.Candidate("s1", 2, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("unknown trip should be stale, got %v", err)
	}
}

func TestSessionCacheInvalidation(t *testing.T) {
	c := NewSessionCache()
	c.Put("s1", 1, []Candidate{{}})
	c.Put("s2", 1, []Candidate{{}})
	c.Put("s1", 2, []Candidate{{}})

	c.InvalidateTrip(1)
	if _, err := c.Candidate("s1", 1, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("trip invalidation missed s1")
	}
	if _, err := c.Candidate("s2", 1, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("trip invalidation missed s2")
	}
	if _, err := c.Candidate("s1", 2, 0); err != nil {
		t.Fatalf("other trip should survive: %v", err)
	}

	c.ClearSession("s1")
	if _, err := c.Candidate("s1", 2, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("session clear missed entry")
	}
}

func TestAssignIndexed(t *testing.T) {
	ms := store.NewMemoryStore()
	seedAssignable(ms)
	e := newTestEngine(t, ms, Config{})
	cache := NewSessionCache()

	cands, err := e.RankDriversForTrip(context.Background(), 1)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	cache.Put("s1", 1, cands)

	res, err := e.AssignIndexed(context.Background(), cache, "s1", 1, 0)
	if err != nil {
		t.Fatalf("assign indexed: %v", err)
	}
	if !res.Committed {
		t.Fatalf("unexpected result: %+v", res)
	}
	// The commit invalidates every cached ranking of the trip.
	if _, err := e.AssignIndexed(context.Background(), cache, "s1", 1, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected stale session after commit, got %v", err)
	}
}

func TestAssignIndexedStaleState(t *testing.T) {
	ms := store.NewMemoryStore()
	seedAssignable(ms)
	e := newTestEngine(t, ms, Config{})
	cache := NewSessionCache()

	cands, _ := e.RankDriversForTrip(context.Background(), 1)
	cache.Put("s1", 1, cands)

	// Someone else commits the trip between ranking and selection.
	if _, err := e.Assign(context.Background(), 1, "d2"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := e.AssignIndexed(context.Background(), cache, "s1", 1, 0); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected ErrStaleSession, got %v", err)
	}
}
