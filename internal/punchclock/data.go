package punchclock

import (
	"context"
	"net/http"

	"github.com/tmc/punchsheet/internal/jsonpath"
	"github.com/tmc/punchsheet/internal/session"
)

type punchClockDataParams struct {
	ObjectID        uint64 `json:"objectId"`
	DefaultTimezone string `json:"defaultTimezone"`
	Spirit          string `json:"_spirit"`
}

// Attachment is a field a shift can carry, such as a free-text note.
type Attachment struct {
	ID   string
	Name string
	Type string
}

// Tag is a project and optional subproject a shift can be booked on.
type Tag struct {
	Project    string
	Subproject string
}

// PunchClockData is the punch clock configuration the dashboard exposes.
type PunchClockData struct {
	Attachments []Attachment
	Tags        []Tag
}

// FetchPunchClockData requests the settings of the punch clock objectID.
func (c *Client) FetchPunchClockData(ctx context.Context, sess session.Info, objectID uint64) (string, error) {
	return c.fetch(ctx, sess, http.MethodPost, "punchClockData", punchClockDataParams{
		ObjectID:        objectID,
		DefaultTimezone: c.Timezone,
		Spirit:          sess.Spirit,
	})
}

// ParsePunchClockData extracts shift attachments and available tags. A tag
// without sub-items yields a single Tag with an empty Subproject.
func ParsePunchClockData(raw string) (*PunchClockData, error) {
	doc, err := jsonpath.Parse(raw)
	if err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	data := doc.Get("data")
	if !data.IsObject() {
		return nil, &SchemaError{Path: "data", Reason: "missing"}
	}

	out := &PunchClockData{}
	for _, a := range data.Get("punchClockSettings", "shiftAttachments").Seq() {
		out.Attachments = append(out.Attachments, Attachment{
			ID:   a.Get("id").Str(),
			Name: a.Get("name").Str(),
			Type: a.Get("type").Str(),
		})
	}
	for _, t := range data.Get("availableTags").Seq() {
		project := t.Get("name").Str()
		subItems := t.Get("subItems").Seq()
		if len(subItems) == 0 {
			out.Tags = append(out.Tags, Tag{Project: project})
			continue
		}
		for _, sub := range subItems {
			out.Tags = append(out.Tags, Tag{Project: project, Subproject: sub.Get("name").Str()})
		}
	}
	return out, nil
}
