package core

import (
	"log/slog"

	"github.com/learnhub/learnhub/cache"
	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/filestore"
	"github.com/learnhub/learnhub/mail"
	"github.com/learnhub/learnhub/router"
)

// App is the application wide context.
// db connections and permanent structs should go here.
//
// All handlers and middleware have App as receiver; the handlers get their
// collaborators through the accessors, never through globals.
type App struct {
	dbAuth         db.DbAuth
	dbCourse       db.DbCourse
	dbLecture      db.DbLecture
	router         router.Router
	params         router.ParamGeter
	courseCache    cache.Cache[string, []*db.Course]
	configProvider *config.Provider
	logger         *slog.Logger
	mailer         mail.Sender
	store          filestore.Store
	authenticator  Authenticator
	validator      Validator
}

// Router returns the application's router instance
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

// Params returns the matched URL parameters extractor.
func (a *App) Params() router.ParamGeter {
	return a.params
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) DbCourse() db.DbCourse {
	return a.dbCourse
}

func (a *App) DbLecture() db.DbLecture {
	return a.dbLecture
}

// SetDb sets the storage interfaces from a single combined implementation.
func (a *App) SetDb(dbApp db.DbApp) {
	if dbApp == nil {
		panic("DbApp cannot be nil")
	}
	a.dbAuth = dbApp
	a.dbCourse = dbApp
	a.dbLecture = dbApp
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) CourseCache() cache.Cache[string, []*db.Course] {
	return a.courseCache
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) Mailer() mail.Sender {
	return a.mailer
}

func (a *App) SetMailer(m mail.Sender) {
	a.mailer = m
}

func (a *App) FileStore() filestore.Store {
	return a.store
}

// SetAuthenticator sets the authenticator implementation
func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

func (a *App) SetConfigProvider(provider *config.Provider) {
	a.configProvider = provider
}

// SetValidator sets the validator implementation
func (a *App) SetValidator(v Validator) {
	a.validator = v
}

// Validator returns the validator instance
func (a *App) Validator() Validator {
	return a.validator
}
