package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"shelter_sync/internal/api"
	"shelter_sync/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting api server", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, api.NewRouter()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
