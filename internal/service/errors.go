package service

import (
	"errors"

	"dronedata/internal/repository"
)

// Credential errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("missing credentials")
)

// Registration errors.
var (
	ErrMissingUsername   = errors.New("no username was given")
	ErrMissingPassword   = errors.New("no password was given")
	ErrInvalidLocation   = errors.New("unknown location")
	ErrDuplicateUsername = repository.ErrDuplicateUsername
)

// Session and authorization errors.
var (
	ErrInvalidToken        = errors.New("invalid session token")
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrSessionUserNotFound = errors.New("session user not found")
	ErrLocationMismatch    = errors.New("location mismatch")
)

// Listing errors.
var (
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrNoDataDirectory      = errors.New("location has no data directory")
)
