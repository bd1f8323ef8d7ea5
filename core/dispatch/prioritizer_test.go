package dispatch

import (
	"testing"
	"time"

	"github.com/friomar/dispatch/core/model"
)

func TestPriorityScore(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		trip model.Trip
		want int
	}{
		{"baseline", model.Trip{}, 50},
		{"urgent", model.Trip{Notes: "URGENTE"}, 90},
		{"high price", model.Trip{Price: 850}, 75},
		{"mid price", model.Trip{Price: 650}, 70},
		{"low band price", model.Trip{Price: 450}, 60},
		{"frozen", model.Trip{Cargo: "CONGELADO -18"}, 65},
		{"chilled", model.Trip{Cargo: "REFRIGERADO +4"}, 60},
		{"deadline today", model.Trip{Deadline: now}, 75},
		{"deadline tomorrow", model.Trip{Deadline: now.AddDate(0, 0, 1)}, 65},
		{"deadline in three days", model.Trip{Deadline: now.AddDate(0, 0, 3)}, 55},
		{"far deadline", model.Trip{Deadline: now.AddDate(0, 0, 10)}, 50},
		{"capped", model.Trip{Notes: "URGENTE", Price: 900, Cargo: "CONGELADO", Deadline: now}, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PriorityScore(c.trip, now); got != c.want {
				t.Fatalf("PriorityScore = %d, want %d", got, c.want)
			}
		})
	}
}

func TestPrioritizeOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	trips := []model.Trip{
		{ID: 1, Price: 300},
		{ID: 2, Notes: "URGENTE", Price: 100},
		{ID: 3, Price: 900},
		{ID: 4, State: model.TripCompleted, Notes: "URGENTE"},
	}
	got := Prioritize(trips, now)
	if len(got) != 3 {
		t.Fatalf("completed trip should be dropped, got %d trips", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("urgent trip should lead, got %d", got[0].ID)
	}
	if got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %d %d", got[1].ID, got[2].ID)
	}
}

func TestPrioritizeTieBreakers(t *testing.T) {
	now := time.Now()
	trips := []model.Trip{
		{ID: 1, Price: 500, Km: 400},
		{ID: 2, Price: 500, Km: 100},
		{ID: 3, Price: 500, Km: 100},
	}
	got := Prioritize(trips, now)
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected tie-break order: %d %d %d", got[0].ID, got[1].ID, got[2].ID)
	}
}
