// Package dates turns the free-text --start/--end arguments into calendar
// dates.
package dates

import (
	"fmt"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// Layout is how calendar dates are written in API requests and table headers.
const Layout = "2006-01-02"

var absoluteLayouts = []string{
	Layout,
	"2006/01/02",
	"02.01.2006",
}

// InputError reports a date argument that could not be understood.
type InputError struct {
	Arg    string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s date %q: %s", e.Arg, e.Value, e.Reason)
}

// Range is an inclusive span of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses both ends of a range relative to now.
func ParseRange(start, end string, now time.Time) (Range, error) {
	s, err := Parse(start, now)
	if err != nil {
		return Range{}, withArg(err, "start")
	}
	e, err := Parse(end, now)
	if err != nil {
		return Range{}, withArg(err, "end")
	}
	if s.After(e) {
		return Range{}, &InputError{Arg: "start", Value: start, Reason: "after end date " + e.Format(Layout)}
	}
	return Range{Start: s, End: e}, nil
}

// Parse reads s as an absolute date (2023-02-01, 2023/02/01, 01.02.2023) or
// a natural-language expression such as "today" or "7 days ago", and
// returns midnight of that day in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &InputError{Value: s, Reason: "empty"}
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	if word := unknownWord(s); word != "" {
		return time.Time{}, &InputError{Value: s, Reason: fmt.Sprintf("unrecognised word %q", word)}
	}
	t, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, &InputError{Value: s, Reason: err.Error()}
	}
	// naturaldate answers text it cannot read with the reference time.
	if t.Equal(now) && !nowForms[strings.ToLower(s)] {
		return time.Time{}, &InputError{Value: s, Reason: "unrecognised date"}
	}
	return Day(t.In(now.Location())), nil
}

var nowForms = map[string]bool{
	"now":       true,
	"right now": true,
	"today":     true,
}

var vocabulary = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		a an the of at in on from
		ago last next this past previous
		now today yesterday tomorrow noon midnight morning afternoon evening night
		second seconds minute minutes hour hours day days week weeks month months year years
		one two three four five six seven eight nine ten eleven twelve
		monday tuesday wednesday thursday friday saturday sunday
		mon tue tues wed thu thur thurs fri sat sun
		january february march april may june july august september october november december
		jan feb mar apr jun jul aug sep sept oct nov dec
		am pm`) {
		vocabulary[w] = true
	}
}

// unknownWord returns the first word of s that is neither a number nor part
// of the date vocabulary, or "" when every word is known.
func unknownWord(s string) string {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ",.")
		if w == "" || vocabulary[w] {
			continue
		}
		if strings.ContainsAny(w, "0123456789") && strings.Trim(w, "0123456789:stndrh") == "" {
			continue
		}
		return w
	}
	return ""
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func withArg(err error, arg string) error {
	if ie, ok := err.(*InputError); ok {
		ie.Arg = arg
	}
	return err
}
