package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultExt is the file extension used for exported table files.
const DefaultExt = ".txt"

// DirProvider reads each table from <Dir>/<name><Ext>.
type DirProvider struct {
	Dir string
	Ext string
}

// NewDirProvider creates a provider rooted at dir. An empty ext means
// DefaultExt.
func NewDirProvider(dir, ext string) *DirProvider {
	if ext == "" {
		ext = DefaultExt
	}
	return &DirProvider{Dir: dir, Ext: ext}
}

// Path returns the file that holds the named table.
func (p *DirProvider) Path(name string) string {
	return filepath.Join(p.Dir, name+p.Ext)
}

// Fetch reads the table file. A missing file is reported as
// ErrTableUnavailable.
func (p *DirProvider) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid table name %q", name)
	}

	data, err := os.ReadFile(p.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", Unavailable(name, err)
		}
		return "", fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return string(data), nil
}
