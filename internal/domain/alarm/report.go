package alarm

import "time"

// Report summarizes one monitoring session.
type Report struct {
	// Actor is who ran the session.
	Actor *Actor
	// StartedAt is when the first reading was requested.
	StartedAt time.Time
	// FinishedAt is when the session ended.
	FinishedAt time.Time
	// PlannedReadings is the number of readings the session was configured to take.
	PlannedReadings int
	// Readings is the number of readings actually taken. It is lower than
	// PlannedReadings when the session was interrupted.
	Readings int
	// LowThreshold and HighThreshold are the bounds in effect.
	LowThreshold  float64
	HighThreshold float64
	// Final is the monitor's state at the end of the session.
	Final Snapshot
}

// NewReport creates a report for the given final snapshot using the current thresholds.
func NewReport(actor *Actor, startedAt, finishedAt time.Time, planned, readings int, final Snapshot) *Report {
	return &Report{
		Actor:           actor.Clone(),
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
		PlannedReadings: planned,
		Readings:        readings,
		LowThreshold:    lowThreshold,
		HighThreshold:   highThreshold,
		Final:           final,
	}
}
