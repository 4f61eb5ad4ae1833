package punchclock

import (
	"context"
	"net/http"

	"github.com/tmc/punchsheet/internal/jsonpath"
	"github.com/tmc/punchsheet/internal/logging"
	"github.com/tmc/punchsheet/internal/session"
)

const (
	operationsContainer = "Operations"
	punchClockDashboard = "punchclock"
)

// ResolveObjectID finds the id of the account's punch clock object.
func (c *Client) ResolveObjectID(ctx context.Context, sess session.Info) (uint64, error) {
	raw, err := c.fetch(ctx, sess, http.MethodGet, "contentStructure", nil)
	if err != nil {
		return 0, err
	}
	return FindPunchClockObjectID(raw)
}

// FindPunchClockObjectID searches a content structure document for objects
// under the punch clock asset of the Operations container. When several
// match, the first in document order is used.
func FindPunchClockObjectID(raw string) (uint64, error) {
	doc, err := jsonpath.Parse(raw)
	if err != nil {
		return 0, &SchemaError{Reason: err.Error()}
	}
	containers := doc.Get("data", "containers")
	if !containers.Exists() {
		return 0, &SchemaError{Path: "data.containers", Reason: "missing"}
	}

	var ids []jsonpath.Value
	for _, container := range containers.Seq() {
		if container.Get("name").Str() != operationsContainer {
			continue
		}
		for _, asset := range container.Get("assets").Seq() {
			if asset.Get("dashboardType").Str() != punchClockDashboard {
				continue
			}
			for _, course := range asset.Get("courses").Seq() {
				for _, section := range course.Get("sections").Seq() {
					for _, object := range section.Get("objects").Seq() {
						if id := object.Get("id"); id.IsNumber() {
							ids = append(ids, id)
						}
					}
				}
			}
		}
	}

	if len(ids) == 0 {
		return 0, &NotFoundError{What: "punch clock object"}
	}
	if len(ids) > 1 {
		logging.Warn().Int("matches", len(ids)).Str("using", ids[0].Raw()).Msg("found more than one punch clock object id")
	}
	id, ok := ids[0].Uint()
	if !ok {
		return 0, &SchemaError{Path: "objects.id", Reason: "not an unsigned integer: " + ids[0].Raw()}
	}
	return id, nil
}
