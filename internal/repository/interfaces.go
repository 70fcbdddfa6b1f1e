package repository

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/alexanderramin/donna/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	// ListRange returns events overlapping [from, to) ordered by start.
	// limit <= 0 means no limit.
	ListRange(ctx context.Context, from, to time.Time, limit int) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

type TokenRepo interface {
	Get(ctx context.Context, provider string) (*oauth2.Token, error)
	Save(ctx context.Context, provider string, tok *oauth2.Token) error
	Delete(ctx context.Context, provider string) error
}
