package dispatch

// AssignmentEvent is published on the bus after every commit attempt.
type AssignmentEvent struct {
	TripID     int64
	DriverID   string
	Previous   string
	Reassigned bool
	Committed  bool
}

// RankingEvent is published after every ranking pass.
type RankingEvent struct {
	TripID     int64
	Zone       string
	Candidates int
}

// AutoPassEvent summarises one automatic assignment round.
type AutoPassEvent struct {
	Pending  int
	Assigned int
	Chained  int
}
