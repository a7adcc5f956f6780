package repository

import (
	"context"
	"database/sql"
	"time"

	"dronedata/internal/models"
)

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, username, hash, location string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Sessions is the server-side session store.
type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.AccessEvent) error
	List(ctx context.Context, q EventQuery) ([]models.AccessEvent, error)
}

// Directory enumerates location directories.
type Directory interface {
	Read(ctx context.Context, rel string) ([]DirEntry, error)
}

type Repository struct {
	Users     Users
	Sessions  Sessions
	EventRepo EventRepo
	Directory Directory
}

// NewRepository wires the SQLite-backed stores and the directory reader rooted at publicDir.
func NewRepository(db *sql.DB, publicDir string) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Sessions:  NewSessionSQLite(db),
		EventRepo: NewEventSQLite(db),
		Directory: NewDirectoryFS(publicDir),
	}
}
