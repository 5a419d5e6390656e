package learnhub

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/learnhub/learnhub/cache/ristretto"
	"github.com/learnhub/learnhub/config"
	"github.com/learnhub/learnhub/core"
	"github.com/learnhub/learnhub/db"
	"github.com/learnhub/learnhub/db/zombiezen"
	"github.com/learnhub/learnhub/filestore"
	"github.com/learnhub/learnhub/mail"
	"github.com/learnhub/learnhub/migrations"
	"github.com/learnhub/learnhub/router/httprouter"
	"github.com/learnhub/learnhub/server"
)

// New builds the application and its server from a configuration file path.
// An empty path runs on defaults, which is enough for local development.
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	bootLogger := slog.Default()

	cfg, err := config.Load(configPath, bootLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	configProvider := config.NewProvider(cfg)

	pool, err := NewZombiezenPool(cfg.DBFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := applySchema(pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	dbApp, err := zombiezen.New(pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	courseCache, err := ristretto.New[[]*db.Course]()
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	store, err := filestore.NewLocal(cfg.Uploads.Dir)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	allOpts := []core.Option{
		core.WithConfigProvider(configProvider),
		core.WithDbApp(dbApp),
		core.WithCourseCache(courseCache),
		core.WithFileStore(store),
		core.WithRouter(httprouter.New()),
		core.WithParamGeter(httprouter.NewParamGeter()),
	}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	if app.Mailer() == nil && cfg.Smtp.Enabled {
		app.SetMailer(mail.New(cfg.Smtp, app.Logger()))
	}

	route(app)

	handler := app.Cors(app.Router())
	srv := server.NewServer(cfg.Server, handler, app.Logger(), pool)

	return app, srv, nil
}

// NewZombiezenPool opens a SQLite pool with defaults that suit a web backend:
// WAL journal and one connection per CPU.
func NewZombiezenPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

func applySchema(pool *sqlitex.Pool) error {
	schema := migrations.Schema()
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)
	return zombiezen.ApplyMigrations(conn, schema)
}
