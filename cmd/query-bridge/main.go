package main

import (
	"context"
	"net/http"

	"bidportal/db/migrations"
	"bidportal/internal/bridge"
	"bidportal/internal/config"
	"bidportal/internal/logging"
	"bidportal/internal/metrics"
	"bidportal/internal/middleware"
	"bidportal/internal/server"
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

	reg := metrics.NewRegistry()
	exec := bridge.NewExecutor(conn, reg)

	r := bridge.NewServer(exec, cfg.Portal.AllowedOrigins).Routes(middleware.Metrics(reg))
	r.Method(http.MethodGet, "/metrics", reg.Handler())

	if err := server.Run(context.Background(), cfg.Bridge.Addr, r); err != nil {
		logging.Fatal("query bridge stopped", "error", err.Error())
	}
}
