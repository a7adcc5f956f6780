package service

import (
	"context"
	"fmt"
	"strings"

	"dronedata/internal/models"
	"dronedata/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user credential logic.
type AuthService struct {
	users repository.Users
}

func NewAuthService(repo repository.Users) *AuthService {
	return &AuthService{users: repo}
}

// Authenticate looks the user up and checks the password. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Register hashes the password and creates a new user bound to location
// (left unset when empty).
func (s *AuthService) Register(ctx context.Context, username, password, location string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrMissingUsername
	}
	if location != "" {
		if _, ok := models.LookupLocation(location); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, location)
		}
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("register %q: %w", username, ErrDuplicateUsername)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	id, err := s.users.Create(ctx, username, hash, location)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, PasswordHash: hash, Location: location}, nil
}

// UserByID re-resolves the user a session points at.
func (s *AuthService) UserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user #%d: %w", id, ErrSessionUserNotFound)
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrMissingPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
