package service

import (
	"context"
	"fmt"
	"time"

	"dronedata/internal/models"
	"dronedata/internal/repository"
)

type MonitoringService struct {
	dir repository.Directory
	now func() time.Time
}

func NewMonitoringService(dir repository.Directory) *MonitoringService {
	return &MonitoringService{dir: dir, now: time.Now}
}

// GetStatus summarises the files a location's listing page would show.
// Locations without a data directory report an empty snapshot.
func (s *MonitoringService) GetStatus(ctx context.Context, location string) (models.LocationStatus, error) {
	st := models.LocationStatus{Location: location, CheckedAt: s.now().UTC()}

	loc, ok := models.LookupLocation(location)
	if !ok || !loc.HasData() {
		return st, nil
	}

	ents, err := s.dir.Read(ctx, loc.DataDir())
	if err != nil {
		return models.LocationStatus{}, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	// Count what the listing shows, so the placeholder is skipped here too.
	ents = skipFirst(ents)
	st.FileCount = len(ents)

	var latest *repository.DirEntry
	for i := range ents {
		if latest == nil || ents[i].CreatedAt.After(latest.CreatedAt) {
			latest = &ents[i]
		}
	}
	if latest != nil {
		st.LatestFile = loc.DisplayPrefix() + latest.Name
		st.LatestTime = httpDate(*latest)
	}
	return st, nil
}
