package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a usage event.
type Kind string

const (
	KindScreenChanged       Kind = "screen_changed"
	KindOnboardingCompleted Kind = "onboarding_completed"
	KindMealToggled         Kind = "meal_toggled"
	KindListExported        Kind = "list_exported"
)

// Channel is the front-end that produced an event.
type Channel string

const (
	ChannelTUI      Channel = "tui"
	ChannelTelegram Channel = "telegram"
	ChannelCLI      Channel = "cli"
)

// Event records a single user action.
type Event struct {
	ID        string
	Kind      Kind
	Channel   Channel
	Detail    string
	Timestamp time.Time
}

// Store handles persistence of usage events to SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Record saves an event. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_events (id, kind, channel, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), string(e.Channel), e.Detail, ts.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", e.Kind, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DailyUsage represents event totals for a single day.
type DailyUsage struct {
	Date        string
	Onboardings int
	MealToggles int
	Exports     int
	Total       int
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := s.now().AddDate(0, 0, -days).Unix()
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at, 'unixepoch') AS day, kind, COUNT(*)
		FROM usage_events
		WHERE created_at >= ?
		GROUP BY day, kind
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var (
			day   string
			kind  string
			count int
		)
		if err := rows.Scan(&day, &kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		if len(results) == 0 || results[len(results)-1].Date != day {
			results = append(results, DailyUsage{Date: day})
		}
		u := &results[len(results)-1]
		switch Kind(kind) {
		case KindOnboardingCompleted:
			u.Onboardings += count
		case KindMealToggled:
			u.MealToggles += count
		case KindListExported:
			u.Exports += count
		}
		u.Total += count
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := s.now().AddDate(0, 0, -olderThanDays).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM usage_events WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up usage events: %w", err)
	}
	return res.RowsAffected()
}
