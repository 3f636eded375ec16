package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"shelter_sync/internal/config"
	"shelter_sync/internal/publisher"
	"shelter_sync/internal/scheduler"
	"shelter_sync/internal/service"
	"shelter_sync/internal/source/petfinder"
	"shelter_sync/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	interval := flag.Duration("interval", 0, "rerun the ETL on this interval; 0 runs once and exits")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	animalStore, err := storage.NewAnimalStore(db)
	if err != nil {
		logger.Error("failed to initialize animal store", "error", err)
		os.Exit(1)
	}
	txManager := storage.NewTransactionManager(db)

	source, err := petfinder.New(petfinder.Config{
		BaseURL:      cfg.Petfinder.BaseURL,
		ClientID:     cfg.Petfinder.ClientID,
		ClientSecret: cfg.Petfinder.ClientSecret,
		Timeout:      cfg.Petfinder.Timeout,
		PageSize:     cfg.Petfinder.PageSize,
		Filters: petfinder.Filters{
			Type:     cfg.Search.Type,
			Age:      cfg.Search.Age,
			Gender:   cfg.Search.Gender,
			Location: cfg.Search.Location,
			Distance: cfg.Search.Distance,
			Status:   cfg.Search.Status,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to initialize petfinder client", "error", err)
		os.Exit(1)
	}

	// Run reports are optional; without a broker URL the ETL just logs.
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	etl := service.NewETLService(source, animalStore, txManager, pub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *interval > 0 {
		sched := scheduler.NewScheduler(etl, *interval, logger)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
			os.Exit(1)
		}
		return
	}

	stats, err := etl.Run(ctx)
	if err != nil {
		logger.Error("etl run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("fetched=%d loaded=%d duration=%s\n", stats.Fetched, stats.Loaded, stats.Duration)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
