package punchclock

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/punchsheet/internal/session"
)

// Timesheet runs the whole extraction: load the session, find the punch
// clock, fetch the range and parse it. Errors name the stage that failed.
func (c *Client) Timesheet(ctx context.Context, sessions session.Provider, start, end time.Time, p Parser) ([]TimesheetEntry, error) {
	sess, err := sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	objectID, err := c.ResolveObjectID(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("resolving object id: %w", err)
	}
	raw, err := c.FetchTimesheet(ctx, sess, objectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching timesheet: %w", err)
	}
	entries, err := p.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return entries, nil
}

// Data loads the session, finds the punch clock and returns its settings.
func (c *Client) Data(ctx context.Context, sessions session.Provider) (*PunchClockData, error) {
	sess, err := sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	objectID, err := c.ResolveObjectID(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("resolving object id: %w", err)
	}
	raw, err := c.FetchPunchClockData(ctx, sess, objectID)
	if err != nil {
		return nil, fmt.Errorf("fetching punch clock data: %w", err)
	}
	data, err := ParsePunchClockData(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return data, nil
}
