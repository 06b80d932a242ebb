package dto

import "time"

type StartOutput struct {
	Age      string
	Message  string
	Streak   int
	CycleSec int
	// Resumed is set when a calm session was already running.
	Resumed bool
}

type SnapshotOutput struct {
	Active     bool
	Age        string
	ElapsedSec int
	Breaths    int
	Phase      string
	// Ready is set once the learner may be offered to finish.
	Ready  bool
	Streak int
}

type FinishOutput struct {
	DurationSec int
	Breaths     int
	NewStreak   int
	Title       string
	Message     string
}

// Event is a calm session event as seen by front ends.
type Event struct {
	Kind       string
	At         time.Time
	ElapsedSec int
	Breaths    int
	Phase      string
	Title      string
	Text       string
}
