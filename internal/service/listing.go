package service

import (
	"context"
	"fmt"
	"net/http"

	"dronedata/internal/models"
	"dronedata/internal/repository"
)

type ListingService struct {
	dir repository.Directory
}

func NewListingService(dir repository.Directory) *ListingService {
	return &ListingService{dir: dir}
}

// ListFiles returns the download links of loc's data directory in filesystem
// enumeration order.
//
// The first enumerated entry is always dropped. It is normally the
// placeholder that keeps the directory in version control, but the skip is
// unconditional: a directory without a placeholder loses a real file.
func (s *ListingService) ListFiles(ctx context.Context, loc models.Location) ([]models.FileEntry, error) {
	if !loc.HasData() {
		return nil, fmt.Errorf("%w: %q", ErrNoDataDirectory, loc.Name)
	}

	ents, err := s.dir.Read(ctx, loc.DataDir())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	ents = skipFirst(ents)
	out := make([]models.FileEntry, 0, len(ents))
	for _, e := range ents {
		out = append(out, models.FileEntry{
			FileName: loc.DisplayPrefix() + e.Name,
			FileTime: httpDate(e),
		})
	}
	return out, nil
}

func skipFirst(ents []repository.DirEntry) []repository.DirEntry {
	if len(ents) == 0 {
		return ents
	}
	return ents[1:]
}

// httpDate formats the creation time like "Mon, 02 Jan 2006 15:04:05 GMT".
func httpDate(e repository.DirEntry) string {
	return e.CreatedAt.UTC().Format(http.TimeFormat)
}
