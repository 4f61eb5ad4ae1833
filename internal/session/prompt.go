package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tmc/punchsheet/internal/logging"
)

// PromptProvider asks the user to paste the cookie header of a logged-in
// dashboard request.
type PromptProvider struct {
	In  io.Reader
	Out io.Writer
	// StorePath is mentioned in the instructions so the user knows where
	// the answer will be kept.
	StorePath string
}

func (p *PromptProvider) Load(context.Context) (Info, error) {
	fmt.Fprintf(p.Out, "Session information is not stored in %s. Go to https://app.connecteam.com/ and log in, "+
		"open the browser developer tools on the network tab, open the time clock page, select the Timesheet request "+
		"and paste the value of its cookie request header here:\n", p.StorePath)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return Info{}, fmt.Errorf("reading cookie header: %w", err)
	}
	return ParseCookieHeader(line)
}

// ParseCookieHeader extracts the session and _spirit cookies from a raw
// cookie header. The whole header may be wrapped in single quotes, as it is
// when copied from a "copy as cURL" command.
func ParseCookieHeader(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "'")
	raw = strings.TrimSuffix(raw, "'")

	cookies := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, seen := cookies[key]; seen {
			continue
		}
		cookies[key] = strings.TrimSpace(value)
	}

	info := Info{Session: cookies["session"], Spirit: cookies["_spirit"]}
	if info.Session == "" {
		return Info{}, &InputError{Field: "cookie header", Reason: "no session cookie"}
	}
	if info.Spirit == "" {
		return Info{}, &InputError{Field: "cookie header", Reason: "no _spirit cookie"}
	}
	return info, nil
}

// StoredOrPrompt loads the stored session, falling back to the prompt and
// persisting whatever the user pasted.
type StoredOrPrompt struct {
	File   *FileProvider
	Prompt Provider
}

func (p *StoredOrPrompt) Load(ctx context.Context) (Info, error) {
	info, err := p.File.Load(ctx)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, ErrNotStored) {
		return Info{}, err
	}

	info, err = p.Prompt.Load(ctx)
	if err != nil {
		return Info{}, err
	}
	if err := p.File.Save(info); err != nil {
		return Info{}, fmt.Errorf("saving session: %w", err)
	}
	logging.Info().Str("path", p.File.Path).Msg("session stored")
	return info, nil
}
