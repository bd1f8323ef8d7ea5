package dispatch

import (
	"sort"
	"time"

	"github.com/friomar/dispatch/core/model"
)

// PriorityScore rates a trip from 0 to 100. Urgency markers weigh heaviest,
// then price bands, cargo class and deadline proximity.
func PriorityScore(t model.Trip, now time.Time) int {
	score := 50

	if t.Urgent() {
		score += 40
	}

	switch {
	case t.Price >= 800:
		score += 25
	case t.Price >= 600:
		score += 20
	case t.Price >= 400:
		score += 10
	}

	// Bonus indexed by cargo rank: dry, chilled, frozen.
	cargoBonus := [...]int{0, 10, 15}
	score += cargoBonus[t.CargoClass().Rank()]

	if days, ok := t.DaysUntilDeadline(now); ok {
		switch {
		case days <= 0:
			score += 25
		case days == 1:
			score += 15
		case days <= 3:
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Prioritize returns the unassigned trips in handling order: priority score
// descending, then price descending, then declared distance ascending, then
// ID for stability. Completed trips are dropped.
func Prioritize(trips []model.Trip, now time.Time) []model.Trip {
	res := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if t.State == model.TripCompleted {
			continue
		}
		res = append(res, t)
	}
	score := make(map[int64]int, len(res))
	for _, t := range res {
		score[t.ID] = PriorityScore(t, now)
	}
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if score[a.ID] != score[b.ID] {
			return score[a.ID] > score[b.ID]
		}
		if a.Price != b.Price {
			return a.Price > b.Price
		}
		if a.Km != b.Km {
			return a.Km < b.Km
		}
		return a.ID < b.ID
	})
	return res
}
