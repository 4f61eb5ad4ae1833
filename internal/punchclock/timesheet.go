package punchclock

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/punchsheet/internal/dates"
	"github.com/tmc/punchsheet/internal/jsonpath"
	"github.com/tmc/punchsheet/internal/logging"
	"github.com/tmc/punchsheet/internal/session"
)

type timesheetParams struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	ObjectID        uint64 `json:"objectId"`
	DefaultTimezone string `json:"defaultTimezone"`
	// The anti-forgery token is checked both as a cookie and in the body.
	Spirit string `json:"_spirit"`
}

// FetchTimesheet requests the timesheet of objectID between two calendar
// dates and returns the undecoded response.
func (c *Client) FetchTimesheet(ctx context.Context, sess session.Info, objectID uint64, start, end time.Time) (string, error) {
	return c.fetch(ctx, sess, http.MethodPost, "timesheet", timesheetParams{
		StartDate:       start.Format(dates.Layout),
		EndDate:         end.Format(dates.Layout),
		ObjectID:        objectID,
		DefaultTimezone: c.Timezone,
		Spirit:          sess.Spirit,
	})
}

// Parser converts timesheet responses into entries.
type Parser struct {
	// SkipMalformed drops shifts without usable punch timestamps, logging a
	// warning, instead of failing the whole parse.
	SkipMalformed bool
}

// ParseTimesheet parses raw with the default, strict Parser.
func ParseTimesheet(raw string) ([]TimesheetEntry, error) {
	return Parser{}.Parse(raw)
}

// Parse returns one entry per shift, in response order.
func (p Parser) Parse(raw string) ([]TimesheetEntry, error) {
	doc, err := jsonpath.Parse(raw)
	if err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	timeSheetEntries := doc.Get("data", "userTimeSheets", "timeSheetEntries")
	if !timeSheetEntries.Exists() {
		return nil, &SchemaError{Path: "data.userTimeSheets.timeSheetEntries", Reason: "missing"}
	}

	var entries []TimesheetEntry
	for i, sheet := range timeSheetEntries.Seq() {
		for j, day := range sheet.Get("timeSheetDayEntries").Seq() {
			for k, shift := range day.Get("shifts").Seq() {
				entry, err := parseShift(shift)
				if err == nil {
					entries = append(entries, entry)
					continue
				}
				path := fmt.Sprintf("timeSheetEntries[%d].timeSheetDayEntries[%d].shifts[%d]", i, j, k)
				if se, ok := err.(*SchemaError); ok {
					se.Path = path + "." + se.Path
				}
				if !p.SkipMalformed {
					return nil, err
				}
				logging.Warn().Err(err).Msg("skipping shift")
			}
		}
	}
	return entries, nil
}

func parseShift(shift jsonpath.Value) (TimesheetEntry, error) {
	start, err := punchTime(shift, "punchIn")
	if err != nil {
		return TimesheetEntry{}, err
	}
	end, err := punchTime(shift, "punchOut")
	if err != nil {
		return TimesheetEntry{}, err
	}
	return TimesheetEntry{
		Start: start,
		End:   end,
		Desc: mergeDescription(
			shift.Get("shiftAttachments", 0, "freeText").Text(),
			shift.Get("employeeNotes").Text(),
		),
		Project:    shift.Get("punchTag", "name").Str(),
		Subproject: shift.Get("punchTag", "subItems", 0, "name").Str(),
	}, nil
}

func punchTime(shift jsonpath.Value, punch string) (time.Time, error) {
	secs, ok := shift.Get(punch, "timestampWithTimezone", "timestamp").Int()
	if !ok {
		return time.Time{}, &SchemaError{
			Path:   punch + ".timestampWithTimezone.timestamp",
			Reason: "missing or not an integer",
		}
	}
	return time.Unix(secs, 0).UTC(), nil
}

// mergeDescription joins the first attachment's free text and the employee
// notes. Empty strings and the "null" marker count as absent.
func mergeDescription(freeText, notes jsonpath.Text) string {
	switch {
	case freeText.Present() && notes.Present():
		return freeText.String() + " / " + notes.String()
	case freeText.Present():
		return freeText.String()
	case notes.Present():
		return notes.String()
	default:
		return ""
	}
}
