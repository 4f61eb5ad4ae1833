// Package punchclock talks to the Connecteam user dashboard API and turns
// its responses into timesheet entries.
package punchclock

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmc/punchsheet/internal/logging"
	"github.com/tmc/punchsheet/internal/session"
)

const (
	// DefaultBaseURL is the dashboard the API lives on.
	DefaultBaseURL = "https://app.connecteam.com"
	// DefaultTimezone is sent as defaultTimezone in punch clock requests.
	DefaultTimezone = "Europe/Warsaw"
)

var urls = map[string]string{
	"contentStructure": "/api/UserDashboard/ContentStructure/",
	"timesheet":        "/api/UserDashboard/PunchClock/Timesheet/",
	"punchClockData":   "/api/UserDashboard/PunchClock/Data/",
}

// Client issues dashboard API calls. Each call is a single attempt.
type Client struct {
	BaseURL  string
	Timezone string
	*http.Client
}

// NewClient returns a Client for baseURL whose requests give up after
// timeout. A zero timeout means no limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Timezone: DefaultTimezone,
		Client:   &http.Client{Timeout: timeout},
	}
}

// fetch sends one request and returns the raw body. body, when not nil, is
// sent as JSON.
func (c *Client) fetch(ctx context.Context, sess session.Info, method, endpoint string, body any) (string, error) {
	u := c.BaseURL + urls[endpoint]

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return "", &TransportError{Op: method, URL: u, Err: err}
	}
	req.Header.Set("cookie", sess.CookieHeader())
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	start := time.Now()
	r, err := c.Do(req)
	if err != nil {
		return "", &TransportError{Op: method, URL: u, Err: err}
	}
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", &TransportError{Op: method, URL: u, Err: err}
	}

	logging.Debug().
		Str("method", method).
		Str("url", u).
		Int("status", r.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("dashboard request")

	if r.StatusCode < 200 || r.StatusCode > 299 {
		return "", &TransportError{Op: method, URL: u, Status: r.StatusCode, Title: pageTitle(r.Header, data)}
	}
	return string(data), nil
}

// pageTitle returns the title of an HTML body. An expired session makes the
// dashboard answer with its login page rather than a JSON error.
func pageTitle(h http.Header, body []byte) string {
	if !strings.Contains(h.Get("content-type"), "html") && !bytes.HasPrefix(bytes.TrimSpace(body), []byte("<")) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
