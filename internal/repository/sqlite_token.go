package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/alexanderramin/donna/internal/db"
)

// SQLiteTokenRepo implements TokenRepo using a SQLite database.
type SQLiteTokenRepo struct {
	db db.DBTX
}

// NewSQLiteTokenRepo creates a new SQLiteTokenRepo.
func NewSQLiteTokenRepo(conn db.DBTX) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: conn}
}

func (r *SQLiteTokenRepo) Get(ctx context.Context, provider string) (*oauth2.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT access_token, token_type, refresh_token, expiry FROM oauth_tokens WHERE provider = ?`, provider)

	var (
		tok    oauth2.Token
		expiry sql.NullString
	)
	if err := row.Scan(&tok.AccessToken, &tok.TokenType, &tok.RefreshToken, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("token %s: %w", provider, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning token: %w", err)
	}
	tok.Expiry = parseNullableTime(expiry)
	return &tok, nil
}

// Save stores tok for provider. A refreshed token without a refresh token
// keeps the stored one.
func (r *SQLiteTokenRepo) Save(ctx context.Context, provider string, tok *oauth2.Token) error {
	if tok == nil {
		return errors.New("saving token: nil token")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO oauth_tokens (provider, access_token, token_type, refresh_token, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			refresh_token = CASE WHEN excluded.refresh_token = '' THEN oauth_tokens.refresh_token ELSE excluded.refresh_token END,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at`,
		provider, tok.AccessToken, tok.TokenType, tok.RefreshToken, nullableTime(tok.Expiry), nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) Delete(ctx context.Context, provider string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE provider = ?`, provider); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}
