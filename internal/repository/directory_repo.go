package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirEntry is one raw directory entry as enumerated by the filesystem.
type DirEntry struct {
	Name      string
	CreatedAt time.Time
}

// DirectoryFS reads location directories below a fixed public root.
type DirectoryFS struct {
	root string
}

func NewDirectoryFS(root string) *DirectoryFS { return &DirectoryFS{root: root} }

var _ Directory = (*DirectoryFS)(nil)

// Read enumerates rel (slash separated, relative to the root) one level deep.
// Entries come back in the order the filesystem yields them; no sorting is applied.
func (r *DirectoryFS) Read(ctx context.Context, rel string) ([]DirEntry, error) {
	dir := filepath.Join(r.root, filepath.FromSlash(rel))

	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory %q: %w", dir, err)
	}
	defer func() { _ = f.Close() }()

	// (*os.File).ReadDir keeps directory order, unlike os.ReadDir.
	ents, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	out := make([]DirEntry, 0, len(ents))
	for _, e := range ents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		created, err := birthTime(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", e.Name(), err)
		}
		out = append(out, DirEntry{Name: e.Name(), CreatedAt: created.UTC()})
	}
	return out, nil
}
