package cli

import (
	"golang.org/x/oauth2"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/repository"
	"github.com/alexanderramin/donna/internal/scheduler"
	"github.com/alexanderramin/donna/internal/service"
)

// App holds the services and session factory used by CLI commands.
type App struct {
	Requests service.RequestService
	Actions  service.ActionService
	Transfer service.TransferService

	// NewSession creates the scheduling context for one invocation or one
	// shell session. Slot state never crosses sessions.
	NewSession func() *app.SchedulingContext

	// StoreErr is set when the calendar could not be opened, e.g. before
	// the first Google authorization. Commands that need the calendar
	// return it; auth still works.
	StoreErr error

	// Auth is nil when the local calendar backend is configured.
	Auth *AuthDeps

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

// AuthDeps is what the auth command needs to connect a Google account.
type AuthDeps struct {
	OAuthConfig func() (*oauth2.Config, error)
	Tokens      repository.TokenRepo
}

func (a *App) ready() error {
	return a.StoreErr
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) session() *app.SchedulingContext {
	if a.NewSession != nil {
		return a.NewSession()
	}
	return app.NewSchedulingContext(nil, nil, scheduler.DefaultPolicy())
}
