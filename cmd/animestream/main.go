package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Nitish-kumar777/streaming/internal/catalog"
	"github.com/Nitish-kumar777/streaming/internal/handlers"
	"github.com/Nitish-kumar777/streaming/internal/ingest"
	"github.com/Nitish-kumar777/streaming/internal/jikan"
	"github.com/Nitish-kumar777/streaming/internal/platform/config"
	"github.com/Nitish-kumar777/streaming/internal/platform/db"
	"github.com/Nitish-kumar777/streaming/internal/platform/events"
	"github.com/Nitish-kumar777/streaming/internal/platform/httpserver"
	"github.com/Nitish-kumar777/streaming/internal/platform/logging"
	"github.com/Nitish-kumar777/streaming/internal/platform/natsconn"
	"github.com/Nitish-kumar777/streaming/internal/platform/run"
	"github.com/Nitish-kumar777/streaming/internal/playback"
)

const draftTTL = 30 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	store, ready, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("open store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
		run.Exit(1)
	}
	defer cleanup()

	// NATS is optional; without it the service still works, just without
	// cross-instance cache invalidation or usage events.
	var nc *nats.Conn
	if cfg.NATSURL != "" {
		nc, err = natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
		if err != nil {
			log.Error("nats connect", zap.Error(err))
			run.Exit(1)
		}
		defer nc.Close()
	}
	pub := events.New(nc, log)
	cache := handlers.NewTTLCache(cfg.SnapshotTTLSeconds, nc, events.InvalidationSubject)

	provider := jikan.New(cfg.JikanBaseURL)
	uploads := ingest.NewService(provider, store, draftTTL, log)
	resolver := playback.NewResolver(store, provider, log)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: ready})

	r.Get("/v1/catalog", handlers.ListCatalog(store, cache))
	r.Get("/v1/search", handlers.SearchCatalog(store, cache, pub))
	r.Post("/v1/uploads/preview", handlers.PreviewUpload(uploads))
	r.Post("/v1/uploads/{draft_id}/confirm", handlers.ConfirmUpload(uploads, cache, pub))
	r.Get("/v1/watch/{anime_id}", handlers.Watch(resolver, pub))

	srv := httpserver.New(httpserver.Options{
		Addr:        cfg.HTTP.Addr,
		ServiceName: cfg.ServiceName,
		Logger:      log,
		Router:      r,
	})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// openStore builds the configured catalog store and returns it together
// with a readiness probe and a cleanup func.
func openStore(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (catalog.Store, func() error, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store, data will not survive restarts")
		return catalog.NewMemoryStore(), nil, noop, nil

	case config.BackendFirebase:
		st := catalog.NewFirebaseStore(cfg.Store.FirebaseURL, cfg.Store.FirebaseAuth)
		return st, nil, noop, nil

	case config.BackendPostgres:
		pool, err := db.Open(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, noop, err
		}
		st := catalog.NewPostgresStore(pool)
		if err := st.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, noop, err
		}
		ready := func() error { return pool.Ping(context.Background()) }
		return st, ready, pool.Close, nil

	default:
		// config.Load validates the backend, this is unreachable.
		return catalog.NewMemoryStore(), nil, noop, nil
	}
}
