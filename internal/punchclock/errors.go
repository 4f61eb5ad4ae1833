package punchclock

import "fmt"

// TransportError is returned when a request cannot be sent or the
// dashboard answers with a non-2xx status.
type TransportError struct {
	Op     string
	URL    string
	Status int
	// Title is the <title> of an HTML error page, when the dashboard
	// answered with one.
	Title string
	Err   error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
	if e.Title != "" {
		msg += fmt.Sprintf(" (%s)", e.Title)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a response is not JSON or lacks a node the
// pipeline cannot do without.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "unexpected response: " + e.Reason
	}
	return fmt.Sprintf("unexpected response at %s: %s", e.Path, e.Reason)
}

// NotFoundError is returned when the content structure has no punch clock.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.What)
}
