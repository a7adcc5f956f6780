package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dronedata/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitoringService_GetStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	t0 := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{entries: map[string][]repository.DirEntry{
		"data/nangi": {
			{Name: ".gitkeep", CreatedAt: t0.Add(48 * time.Hour)},
			{Name: "a.csv", CreatedAt: t0},
			{Name: "b.csv", CreatedAt: t0.Add(time.Hour)},
			{Name: "c.csv", CreatedAt: t0.Add(30 * time.Minute)},
		},
	}}
	svc := NewMonitoringService(dir)
	svc.now = func() time.Time { return now }

	st, err := svc.GetStatus(context.Background(), "nangi")
	require.NoError(t, err)
	assert.Equal(t, "nangi", st.Location)
	assert.Equal(t, 3, st.FileCount)
	assert.Equal(t, "../data/nangi/b.csv", st.LatestFile)
	assert.Equal(t, "Mon, 01 Apr 2024 11:00:00 GMT", st.LatestTime)
	assert.Equal(t, now, st.CheckedAt)
}

func TestMonitoringService_NoDataLocations(t *testing.T) {
	dir := &fakeDirectory{}
	svc := NewMonitoringService(dir)

	for _, name := range []string{"default", "all", "nowhere", ""} {
		st, err := svc.GetStatus(context.Background(), name)
		require.NoError(t, err, name)
		assert.Equal(t, name, st.Location)
		assert.Zero(t, st.FileCount)
		assert.Empty(t, st.LatestFile)
	}
	assert.Empty(t, dir.reads)
}

func TestMonitoringService_DirectoryError(t *testing.T) {
	svc := NewMonitoringService(&fakeDirectory{err: errors.New("permission denied")})
	_, err := svc.GetStatus(context.Background(), "dharan")
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}
