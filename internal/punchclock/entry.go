package punchclock

import "time"

// TimesheetEntry is one shift: when it started and ended, what was noted
// about it and which punch tag it was booked on.
type TimesheetEntry struct {
	Start      time.Time
	End        time.Time
	Desc       string
	Project    string
	Subproject string
}

// Duration is the time between punching in and punching out.
func (e TimesheetEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Entries sorts by start time.
type Entries []TimesheetEntry

func (e Entries) Len() int {
	return len(e)
}

func (e Entries) Less(i, j int) bool {
	return e[i].Start.Before(e[j].Start)
}

func (e Entries) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

// Duration sums the duration of all entries.
func (e Entries) Duration() time.Duration {
	var total time.Duration
	for _, entry := range e {
		total += entry.Duration()
	}
	return total
}
