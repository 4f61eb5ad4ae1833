package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotStored is returned by FileProvider.Load when no session file exists.
var ErrNotStored = errors.New("session not stored")

// FileProvider reads and writes Info as pretty-printed JSON.
type FileProvider struct {
	Fs   afero.Fs
	Path string
}

// NewFileProvider returns a provider for path on the OS filesystem.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Fs: afero.NewOsFs(), Path: path}
}

func (p *FileProvider) Load(context.Context) (Info, error) {
	data, err := afero.ReadFile(p.Fs, p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Info{}, fmt.Errorf("%w in %s", ErrNotStored, p.Path)
	}
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("decoding %s: %w", p.Path, err)
	}
	return info, nil
}

// Save writes info to the provider's path, creating parent directories.
func (p *FileProvider) Save(info Info) error {
	if err := p.Fs.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(p.Fs, p.Path, data, 0o600)
}
