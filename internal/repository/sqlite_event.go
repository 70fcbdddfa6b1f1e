package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/donna/internal/db"
	"github.com/alexanderramin/donna/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database. Instants read
// back are converted to loc.
type SQLiteEventRepo struct {
	db  db.DBTX
	loc *time.Location
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX, loc *time.Location) *SQLiteEventRepo {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteEventRepo{db: conn, loc: loc}
}

const eventColumns = `id, summary, start_at, end_at, all_day, location, description, color_id, html_link`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Summary, formatTime(e.Start), formatTime(e.End), boolToInt(e.AllDay),
		e.Location, e.Description, e.ColorID, e.HTMLLink, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return e, nil
}

func (r *SQLiteEventRepo) ListRange(ctx context.Context, from, to time.Time, limit int) ([]domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, summary`
	args := []any{formatTime(to), formatTime(from)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var out []domain.CalendarEvent
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.CalendarEvent) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET summary = ?, start_at = ?, end_at = ?, all_day = ?, location = ?,
		description = ?, color_id = ?, html_link = ?, updated_at = ?
		WHERE id = ?`,
		e.Summary, formatTime(e.Start), formatTime(e.End), boolToInt(e.AllDay), e.Location,
		e.Description, e.ColorID, e.HTMLLink, nowUTC(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return expectOneRow(res, e.ID)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return expectOneRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEventRepo) scan(row rowScanner) (*domain.CalendarEvent, error) {
	var (
		e          domain.CalendarEvent
		start, end string
		allDay     int
	)
	if err := row.Scan(&e.ID, &e.Summary, &start, &end, &allDay,
		&e.Location, &e.Description, &e.ColorID, &e.HTMLLink); err != nil {
		return nil, err
	}
	var err error
	if e.Start, err = parseTime(start, r.loc); err != nil {
		return nil, fmt.Errorf("event %s start: %w", e.ID, err)
	}
	if e.End, err = parseTime(end, r.loc); err != nil {
		return nil, fmt.Errorf("event %s end: %w", e.ID, err)
	}
	e.AllDay = intToBool(allDay)
	return &e, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return nil
}
