// Package render lays timesheet entries out as rows, newest day first.
package render

import (
	"sort"

	"github.com/tmc/punchsheet/internal/dates"
	"github.com/tmc/punchsheet/internal/punchclock"
)

// Columns is the header row of the timesheet table.
var Columns = []string{"Start", "End", "Description", "Project", "Subproject"}

const timeLayout = "15:04"

// Sink receives rows in display order.
type Sink interface {
	// Header starts the table; its length is the column count.
	Header(cells ...string)
	// Day emits a row spanning every column.
	Day(label string)
	Row(cells ...string)
}

// SortForDisplay stable-sorts entries by start and then reverses them, so
// the newest shift comes first and shifts starting at the same instant end
// up in the reverse of their original order.
func SortForDisplay(entries []punchclock.TimesheetEntry) {
	sort.Stable(punchclock.Entries(entries))
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// GroupByDay splits entries into runs of adjacent entries that start on the
// same UTC calendar day. Non-adjacent entries of one day form separate runs.
func GroupByDay(entries []punchclock.TimesheetEntry) [][]punchclock.TimesheetEntry {
	var groups [][]punchclock.TimesheetEntry
	begin := 0
	for i := 1; i <= len(entries); i++ {
		if i == len(entries) || !sameDay(entries[i-1], entries[i]) {
			groups = append(groups, entries[begin:i])
			begin = i
		}
	}
	return groups
}

func sameDay(a, b punchclock.TimesheetEntry) bool {
	ay, am, ad := a.Start.UTC().Date()
	by, bm, bd := b.Start.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Timesheet sorts entries in place and emits the header, then a day row
// followed by that day's entries for every group.
func Timesheet(entries []punchclock.TimesheetEntry, sink Sink) {
	SortForDisplay(entries)

	sink.Header(Columns...)
	for _, day := range GroupByDay(entries) {
		sink.Day(day[0].Start.UTC().Format(dates.Layout))
		for _, e := range day {
			sink.Row(
				e.Start.UTC().Format(timeLayout),
				e.End.UTC().Format(timeLayout),
				e.Desc,
				e.Project,
				e.Subproject,
			)
		}
	}
}

// Tags emits one row per project and subproject pair.
func Tags(tags []punchclock.Tag, sink Sink) {
	sink.Header("Project", "Subproject")
	for _, t := range tags {
		sink.Row(t.Project, t.Subproject)
	}
}

// Attachments emits one row per shift attachment.
func Attachments(attachments []punchclock.Attachment, sink Sink) {
	sink.Header("ID", "Name", "Type")
	for _, a := range attachments {
		sink.Row(a.ID, a.Name, a.Type)
	}
}
