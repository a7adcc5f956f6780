package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dronedata/internal/models"

	"github.com/google/uuid"
)

const (
	insertEventSQL = `INSERT INTO access_events (id, occurred_at, type, username, location, message, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, username, location, message, meta FROM access_events`
)

// EventQuery narrows List. Zero values mean "no constraint".
type EventQuery struct {
	From     time.Time
	To       time.Time
	Type     string
	Location string
}

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQLite) Append(ctx context.Context, e models.AccessEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal access event metadata: %w", err)
		}
		s := string(b)
		metaPtr = &s
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		nullString(e.Username),
		nullString(e.Location),
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert access event: %w", err)
	}
	return nil
}

// List returns events matching q, ordered ASC by occurrence.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.AccessEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimeLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if q.Location != "" {
		conds = append(conds, "location = ?")
		args = append(args, q.Location)
	}

	query := selectEventSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select access events: %w", err)
	}
	defer rows.Close()

	out := make([]models.AccessEvent, 0, 64)
	for rows.Next() {
		var ev models.AccessEvent
		var username, loc, metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &username, &loc, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan access event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.Username = username.String
		ev.Location = loc.String

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
