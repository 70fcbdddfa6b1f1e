package google

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/repository"
)

// persistingSource wraps a refreshing token source and saves each token
// whose access token changed.
type persistingSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	tokens repository.TokenRepo

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, domain.Authentication(err, "Your Google Calendar session has expired. Run 'donna auth' again.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.tokens.Save(s.ctx, Provider, tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
