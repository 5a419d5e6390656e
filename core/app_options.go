package core

import (
	"fmt"
	"log/slog"

	"github.com/learnhub/learnhub/cache"
	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
	"github.com/learnhub/learnhub/mail"
	"github.com/learnhub/learnhub/router"
)

type Option func(*App)

// WithDbApp sets the storage implementation for every storage role.
func WithDbApp(d db.DbApp) Option {
	return func(a *App) {
		a.SetDb(d)
	}
}

// WithRouter sets the router implementation
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithParamGeter sets the URL parameter extractor matching the router.
func WithParamGeter(p router.ParamGeter) Option {
	return func(a *App) {
		a.params = p
	}
}

// WithCourseCache sets the cache for published course listings.
func WithCourseCache(c cache.Cache[string, []*db.Course]) Option {
	return func(a *App) {
		a.courseCache = c
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithMailer sets the email sender.
func WithMailer(m mail.Sender) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithFileStore sets the upload storage.
func WithFileStore(s filestore.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithAuthenticator sets the authenticator implementation.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.authenticator = auth
	}
}

// WithValidator sets the validator implementation.
func WithValidator(v Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}

// NewApp builds an App and checks the collaborators no handler can run
// without.
func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.dbAuth == nil || a.dbCourse == nil || a.dbLecture == nil {
		return nil, fmt.Errorf("storage is required but was not provided (use WithDbApp)")
	}
	if a.configProvider == nil {
		return nil, fmt.Errorf("config provider is required (use WithConfigProvider)")
	}
	if a.logger == nil {
		return nil, fmt.Errorf("logger is required (use WithLogger)")
	}

	if a.validator == nil {
		a.validator = NewValidator()
	}
	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.dbAuth, a.logger, a.configProvider)
	}

	return a, nil
}
