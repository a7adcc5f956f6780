package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dronedata/internal/models"
	"dronedata/internal/repository"
)

// LogFilter supports history filtering by time range, type and location.
type LogFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Type     string    // "", "LOGIN", "LOGIN_FAILED", "SIGNUP", "DENIED", "LISTING", "LOGOUT"
	Location string    // "" means every location
}

type EventLogService struct {
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo, now: time.Now}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errMissingEventType = errors.New("event type is required")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (repository.EventQuery, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.EventQuery{}, errInvalidTimeRange
	}

	return repository.EventQuery{
		From:     from,
		To:       to,
		Type:     normalizeEventType(f.Type),
		Location: strings.TrimSpace(f.Location),
	}, nil
}

// Record appends e, stamping the current time when OccurredAt is zero.
func (s *EventLogService) Record(ctx context.Context, e models.AccessEvent) error {
	e.Type = normalizeEventType(e.Type)
	if e.Type == "" {
		return errMissingEventType
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now().UTC()
	}
	return s.eventRepo.Append(ctx, e)
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AccessEvent, error) {
	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}
