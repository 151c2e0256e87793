package main

import (
	"context"
	"net/http"

	"bidportal/db"
	"bidportal/db/migrations"
	"bidportal/internal/bridge"
	"bidportal/internal/config"
	"bidportal/internal/handlers"
	"bidportal/internal/logging"
	"bidportal/internal/metrics"
	mw "bidportal/internal/middleware"
	"bidportal/internal/server"
	"bidportal/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logging.Close()

	ctx := context.Background()
	reg := metrics.NewRegistry()

	var q bridge.Querier
	if cfg.NeedsDatabase() {
		conn, err := bridge.Open(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			logging.Fatal("cannot connect to database", "error", err.Error())
		}
		defer conn.Close()

		if cfg.Database.Migrate {
			if err := migrations.Run(conn.DB, cfg.Database.Driver); err != nil {
				logging.Fatal("migrations failed", "error", err.Error())
			}
		}
		q = bridge.NewExecutor(conn, reg)
		logging.Info("using in-process query executor", "driver", cfg.Database.Driver)
	} else {
		q = bridge.NewClient(cfg.Bridge.URL, cfg.Bridge.Timeout)
		logging.Info("using remote query bridge", "url", cfg.Bridge.URL)
	}
	store := db.NewStorage(q, db.WithHashCost(cfg.Auth.BcryptCost))

	var sessions session.Store
	switch cfg.Session.Backend {
	case config.SessionRedis:
		client, err := session.DialRedis(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
		if err != nil {
			logging.Fatal("cannot connect to redis", "error", err.Error())
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}
	manager := session.NewManager(sessions, store, session.Options{
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
		LoginPath:  cfg.Portal.LoginPath,
	}, reg)

	h := handlers.NewHandler(store, manager)
	limiter := mw.NewRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst, cfg.Auth.LoginIdle)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Portal.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Metrics(reg))

	r.Get("/ping", h.PingHandler)
	r.Method(http.MethodGet, "/metrics", reg.Handler())
	r.Mount("/api", h.Routes(limiter.Handler))

	if err := server.Run(ctx, cfg.Portal.Addr, r); err != nil {
		logging.Fatal("portal server stopped", "error", err.Error())
	}
}
