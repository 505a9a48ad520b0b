package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Command outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Entry is one recorded command attempt.
type Entry struct {
	ID        int64
	Op        string // "park" | "leave" | "configure"
	VehicleID string
	Category  string
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// Record appends one command attempt to the log.
func (s *Storage) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO command_history (op, vehicle_id, category, outcome, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Op, e.VehicleID, e.Category, e.Outcome, e.Detail, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record command: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Storage) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, op, vehicle_id, category, outcome, detail, created_at
		FROM command_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Op, &e.VehicleID, &e.Category, &e.Outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}
