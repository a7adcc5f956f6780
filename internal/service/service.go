package service

import (
	"context"
	"time"

	"dronedata/internal/logger"
	"dronedata/internal/models"
	"dronedata/internal/repository"
)

// Authentication verifies credentials and registers users.
type Authentication interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, password, location string) (*models.User, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// Sessions issues and resolves the signed session cookie values.
type Sessions interface {
	Issue(ctx context.Context, userID int) (string, models.Session, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// Guard decides whether a user may open a location-scoped path.
type Guard interface {
	Authorize(user models.User, requestedPath, expectedSuffix string) error
}

// Listing builds the download list of a location.
type Listing interface {
	ListFiles(ctx context.Context, loc models.Location) ([]models.FileEntry, error)
}

// AccessLog exposes append-only audit events with filtering access.
type AccessLog interface {
	Record(ctx context.Context, e models.AccessEvent) error
	List(ctx context.Context, f LogFilter) ([]models.AccessEvent, error)
}

// Monitoring exposes read-only per-location directory status.
type Monitoring interface {
	GetStatus(ctx context.Context, location string) (models.LocationStatus, error)
}

// Sweeper runs the background loop that drops expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// Options carries the settings services need from configuration.
type Options struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	Policy        Policy
	Log           *logger.Logger
}

// Service aggregates all sub-services.
type Service struct {
	Authentication
	Sessions
	Guard
	Listing
	AccessLog
	Monitoring
	Sweeper
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authentication: NewAuthService(repos.Users),
		Sessions:       NewSessionService(repos.Sessions, opts.SessionSecret, opts.SessionTTL),
		Guard:          NewGuardService(opts.Policy),
		Listing:        NewListingService(repos.Directory),
		AccessLog:      NewEventLogService(repos.EventRepo),
		Monitoring:     NewMonitoringService(repos.Directory),
		Sweeper:        NewSweeperService(repos.Sessions, opts.Log),
	}
}
