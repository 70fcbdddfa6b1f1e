package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/oauth2"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/calendar"
	"github.com/alexanderramin/donna/internal/cli"
	"github.com/alexanderramin/donna/internal/config"
	"github.com/alexanderramin/donna/internal/db"
	"github.com/alexanderramin/donna/internal/google"
	"github.com/alexanderramin/donna/internal/intelligence"
	"github.com/alexanderramin/donna/internal/llm"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/repository"
	"github.com/alexanderramin/donna/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(ctx, nil)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observer := service.NewSlogUseCaseObserver(logger)
	a := &cli.App{
		NewSession: func() *app.SchedulingContext {
			return app.NewSchedulingContext(cfg.Location, nil, cfg.Policy)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	store, err := openStore(ctx, cfg, a, database, logger)
	if err != nil {
		// Keep going so 'donna auth' can fix a missing token.
		a.StoreErr = err
	} else if err := wireServices(ctx, cfg, a, store, logger, observer); err != nil {
		return err
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// openStore selects the calendar backend. For Google it also wires the auth
// command, which must work before any token exists.
func openStore(ctx context.Context, cfg *config.Config, a *cli.App, database *sql.DB, logger *slog.Logger) (calendar.Store, error) {
	if cfg.Backend == config.BackendLocal {
		logger.Debug("calendar_backend", slog.String("backend", "local"), slog.String("db", cfg.DBPath))
		return repository.NewLocalStore(database, cfg.Location), nil
	}

	tokens := repository.NewSQLiteTokenRepo(database)
	oauthConfig := func() (*oauth2.Config, error) { return google.LoadConfig(cfg.GoogleCredentials) }
	a.Auth = &cli.AuthDeps{OAuthConfig: oauthConfig, Tokens: tokens}

	conf, err := oauthConfig()
	if err != nil {
		return nil, err
	}
	client, err := google.HTTPClient(ctx, conf, tokens)
	if err != nil {
		return nil, err
	}
	logger.Debug("calendar_backend", slog.String("backend", "google"), slog.String("calendar_id", cfg.CalendarID))
	return calendar.NewGoogleStore(ctx, client, cfg.CalendarID, cfg.Location)
}

func wireServices(ctx context.Context, cfg *config.Config, a *cli.App, store calendar.Store, logger *slog.Logger, observer service.UseCaseObserver) error {
	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		llmObserver = llm.NewSlogObserver(logger)
	}
	interp, err := llm.New(ctx, cfg.LLM, llmObserver)
	if err != nil {
		return err
	}
	wireWithInterpreter(cfg, a, interp, store, logger, observer)
	return nil
}

// wireWithInterpreter builds the use-case services on interp. The policy
// file's date heuristics reach the extractor through cfg.Policy.Date.
func wireWithInterpreter(cfg *config.Config, a *cli.App, interp llm.Interpreter, store calendar.Store, logger *slog.Logger, observer service.UseCaseObserver) {
	opts := service.RequestOptions{Hooks: []service.ResponseHook{service.MotivationHook{}}}
	if cfg.Classify || cfg.Mood {
		classifier := intelligence.NewClassifier(interp, logger)
		if cfg.Classify {
			opts.Classifier = classifier
		}
		if cfg.Mood {
			opts.Hooks = append(opts.Hooks, service.MoodHook{Classifier: classifier})
		}
	}

	actions := service.NewActionService(store, logger, observer)
	extractor := intelligence.NewExtractor(interp, cfg.Policy.Date, logger)
	a.Actions = actions
	a.Requests = service.NewRequestService(extractor, actions, opts, logger, observer)
	a.Transfer = service.NewTransferService(store, logger, observer)
}
