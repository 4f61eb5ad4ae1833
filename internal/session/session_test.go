package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePath = "/home/worker/.config/connectteam.json"

func TestCookieHeader(t *testing.T) {
	info := Info{Session: "abc", Spirit: "xyz"}
	assert.Equal(t, "session=abc; _spirit=xyz; ", info.CookieHeader())
}

func TestFileProviderRoundTrip(t *testing.T) {
	p := &FileProvider{Fs: afero.NewMemMapFs(), Path: storePath}
	want := Info{Session: "s3ss/+==", Spirit: "sp1r1t-é"}

	require.NoError(t, p.Save(want))
	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := afero.ReadFile(p.Fs, storePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"session\": ")

	fi, err := p.Fs.Stat(storePath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", fi.Mode().Perm().String())
}

func TestFileProviderMissing(t *testing.T) {
	p := &FileProvider{Fs: afero.NewMemMapFs(), Path: storePath}
	_, err := p.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotStored)
}

func TestFileProviderCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, storePath, []byte("{"), 0o600))
	p := &FileProvider{Fs: fs, Path: storePath}

	_, err := p.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotStored)
}

func TestParseCookieHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Info
	}{
		{"plain", "session=abc; _spirit=xyz", Info{"abc", "xyz"}},
		{"quoted", "  'lang=en; session=abc; _spirit=xyz; other=1'\n", Info{"abc", "xyz"}},
		{"value with equals", "session=ab==; _spirit=x=y", Info{"ab==", "x=y"}},
		{"spaces around", " session = abc ;_spirit=  xyz  ;", Info{"abc", "xyz"}},
		{"first wins", "session=one; session=two; _spirit=x", Info{"one", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCookieHeader(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCookieHeaderMissingKeys(t *testing.T) {
	for _, raw := range []string{"", "session=abc", "_spirit=xyz", "garbage", "spirit=x; session=y"} {
		_, err := ParseCookieHeader(raw)
		var inputErr *InputError
		assert.True(t, errors.As(err, &inputErr), "expected InputError for %q, got %v", raw, err)
	}
}

func TestPromptProvider(t *testing.T) {
	var out bytes.Buffer
	p := &PromptProvider{In: strings.NewReader("session=abc; _spirit=xyz"), Out: &out, StorePath: storePath}

	info, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Info{"abc", "xyz"}, info)
	assert.Contains(t, out.String(), storePath)
}

func TestPromptProviderNoInput(t *testing.T) {
	p := &PromptProvider{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	_, err := p.Load(context.Background())
	assert.Error(t, err)
}

func TestStoredOrPromptPersistsPrompt(t *testing.T) {
	file := &FileProvider{Fs: afero.NewMemMapFs(), Path: storePath}
	p := &StoredOrPrompt{
		File:   file,
		Prompt: &PromptProvider{In: strings.NewReader("'session=abc; _spirit=xyz'\n"), Out: &bytes.Buffer{}},
	}

	info, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Info{"abc", "xyz"}, info)

	stored, err := file.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, info, stored)
}

type failingProvider struct{}

func (failingProvider) Load(context.Context) (Info, error) {
	return Info{}, errors.New("prompt should not be used")
}

func TestStoredOrPromptPrefersFile(t *testing.T) {
	file := &FileProvider{Fs: afero.NewMemMapFs(), Path: storePath}
	require.NoError(t, file.Save(Info{"stored", "spirit"}))

	info, err := (&StoredOrPrompt{File: file, Prompt: failingProvider{}}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Info{"stored", "spirit"}, info)
}

func TestStaticProvider(t *testing.T) {
	info, err := Static{Session: "a", Spirit: "b"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Info{"a", "b"}, info)
}
