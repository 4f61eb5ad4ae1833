// Package session loads the dashboard cookies that authenticate API calls.
package session

import (
	"context"
	"fmt"
)

// Info holds the two cookie values the dashboard API needs.
type Info struct {
	Session string `json:"session"`
	Spirit  string `json:"spirit"`
}

// CookieHeader formats the cookie header sent with every request.
func (i Info) CookieHeader() string {
	return fmt.Sprintf("session=%s; _spirit=%s; ", i.Session, i.Spirit)
}

// Provider supplies session cookies for a run.
type Provider interface {
	Load(ctx context.Context) (Info, error)
}

// Static is a Provider that always returns the same Info.
type Static Info

func (s Static) Load(context.Context) (Info, error) {
	return Info(s), nil
}

// InputError reports malformed user input, such as a pasted cookie header
// without the expected keys.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
