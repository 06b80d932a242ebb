package domain

import "time"

// ISOLayout is UTC with millisecond precision, e.g. 2026-03-02T09:00:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Report is the note written for every finished session.
type Report struct {
	SessionID    string
	SubjectID    string
	SubjectLabel string
	Age          string
	StartedAt    time.Time
	EndedAt      time.Time
	ElapsedSec   int
	TotalTimeSec int
	Streak       int
	Quality      string
	Badge        string
	Completion   string
	Interactions []InteractionEntry
}
