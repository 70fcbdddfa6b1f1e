package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/repository"
)

// Provider is the key the Google token is stored under.
const Provider = "google"

// LoadConfig reads an OAuth client credentials file downloaded from the
// Google Cloud console.
func LoadConfig(path string) (*oauth2.Config, error) {
	if path == "" {
		return nil, domain.Authentication(nil, "No Google credentials file configured. Set DONNA_GOOGLE_CREDENTIALS.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return ConfigFromJSON(data)
}

// ConfigFromJSON builds the OAuth config for read/write calendar access.
func ConfigFromJSON(data []byte) (*oauth2.Config, error) {
	conf, err := google.ConfigFromJSON(data, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return conf, nil
}

// AuthURL returns the consent page URL. Offline access makes Google issue a
// refresh token.
func AuthURL(conf *oauth2.Config, state string) string {
	return conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token and stores it.
func Exchange(ctx context.Context, conf *oauth2.Config, tokens repository.TokenRepo, code string) (*oauth2.Token, error) {
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, domain.Authentication(err, "Google rejected the authorization code. Please run the authorization again.")
	}
	if err := tokens.Save(ctx, Provider, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// HasToken reports whether a token has been stored.
func HasToken(ctx context.Context, tokens repository.TokenRepo) bool {
	_, err := tokens.Get(ctx, Provider)
	return err == nil
}

// TokenSource returns a source that refreshes the stored token and persists
// every new token it sees.
func TokenSource(ctx context.Context, conf *oauth2.Config, tokens repository.TokenRepo) (oauth2.TokenSource, error) {
	tok, err := tokens.Get(ctx, Provider)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Authentication(err, "Donna is not connected to Google Calendar yet. Run 'donna auth' first.")
		}
		return nil, err
	}
	return &persistingSource{
		ctx:    ctx,
		base:   conf.TokenSource(ctx, tok),
		tokens: tokens,
		last:   tok.AccessToken,
	}, nil
}

// HTTPClient returns an authorized client for the Calendar API.
func HTTPClient(ctx context.Context, conf *oauth2.Config, tokens repository.TokenRepo) (*http.Client, error) {
	ts, err := TokenSource(ctx, conf, tokens)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
