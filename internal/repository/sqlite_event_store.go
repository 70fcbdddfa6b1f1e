package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/donna/internal/calendar"
	"github.com/alexanderramin/donna/internal/db"
	"github.com/alexanderramin/donna/internal/domain"
)

// LocalStore is an offline calendar.Store kept in SQLite.
type LocalStore struct {
	conn *sql.DB
	uow  db.UnitOfWork
	loc  *time.Location
}

var _ calendar.Store = (*LocalStore)(nil)

// NewLocalStore creates a store over an open database. Instants read back
// are converted to loc.
func NewLocalStore(conn *sql.DB, loc *time.Location) *LocalStore {
	if loc == nil {
		loc = time.Local
	}
	return &LocalStore{conn: conn, uow: db.NewSQLiteUnitOfWork(conn), loc: loc}
}

func (s *LocalStore) repo() *SQLiteEventRepo {
	return NewSQLiteEventRepo(s.conn, s.loc)
}

func (s *LocalStore) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]domain.CalendarEvent, error) {
	return s.repo().ListRange(ctx, timeMin, timeMax, maxResults)
}

func (s *LocalStore) GetEvent(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	e, err := s.repo().GetByID(ctx, id)
	return e, notFound(err, id)
}

func (s *LocalStore) InsertEvent(ctx context.Context, in domain.EventInput) (*domain.CalendarEvent, error) {
	if !in.End.After(in.Start) {
		return nil, domain.InvalidInput("The event must end after it starts.")
	}
	e := &domain.CalendarEvent{
		ID:          uuid.New().String(),
		Summary:     in.Summary,
		Start:       in.Start.In(s.loc),
		End:         in.End.In(s.loc),
		AllDay:      in.AllDay,
		Location:    in.Location,
		Description: in.Description,
		ColorID:     in.ColorID,
	}
	if err := s.repo().Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEvent overlays patch in one transaction.
func (s *LocalStore) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.CalendarEvent, error) {
	var updated *domain.CalendarEvent
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteEventRepo(tx, s.loc)
		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Summary != nil {
			e.Summary = *patch.Summary
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Location != nil {
			e.Location = *patch.Location
		}
		if patch.Start != nil {
			e.Start = patch.Start.In(s.loc)
			e.AllDay = false
		}
		if patch.End != nil {
			e.End = patch.End.In(s.loc)
		}
		if !e.End.After(e.Start) {
			return domain.InvalidInput("The event must end after it starts.")
		}
		if err := repo.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, notFound(err, id)
	}
	return updated, nil
}

func (s *LocalStore) DeleteEvent(ctx context.Context, id string) error {
	return notFound(s.repo().Delete(ctx, id), id)
}

func notFound(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return &domain.CalendarError{
			Kind: domain.ErrEventNotFound,
			Msg:  fmt.Sprintf("The event %s no longer exists.", id),
			Err:  err,
		}
	}
	return err
}
