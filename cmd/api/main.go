package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/magscene/magsav/internal/api"
	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/httpclients/s3"
	"github.com/magscene/magsav/internal/repository"
	"github.com/magscene/magsav/internal/service"
	"github.com/magscene/magsav/pkg/broker"
	"github.com/magscene/magsav/pkg/config"
	"github.com/magscene/magsav/pkg/job"
	"github.com/magscene/magsav/pkg/logger"
	"github.com/magscene/magsav/pkg/metrics"
	"github.com/magscene/magsav/pkg/postgres"
)

const (
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// @title		MAGSAV API
// @version	1.0
// @BasePath	/api
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(ctx, cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)
	m := metrics.New()

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.RecordEventsTopic)
	producer.OnSent(func(kind entity.Kind, action entity.RecordAction, err error) {
		m.ObserveEvent(string(kind), string(action), err)
	})
	defer producer.Close()

	var photos service.PhotoStorage

	if cfg.S3.Bucket != "" {
		bucket, err := s3.New(ctx, cfg.S3)
		panicOnErr("create s3 client", err)

		photos = bucket
	} else {
		slog.WarnContext(ctx, "no photo bucket configured, photo endpoints disabled")
	}

	s := service.New(service.Repositories{
		Clients:         repo.Clients,
		Suppliers:       repo.Suppliers,
		Equipment:       repo.Equipment,
		Vehicles:        repo.Vehicles,
		Contracts:       repo.Contracts,
		Personnel:       repo.Personnel,
		ServiceRequests: repo.ServiceRequests,
		Repairs:         repo.Repairs,
		RMAs:            repo.RMAs,
		Projects:        repo.Projects,
	}, producer, photos)

	jobs := job.NewService().
		OnDone(m.ObserveJob).
		TryRegisterJob(
			cfg.Jobs.MaintenanceEnabled, "maintenance_reminders", cfg.Jobs.MaintenanceInterval, s.NotifyMaintenanceDue,
		)
	jobs.Start(ctx)

	defer func() {
		cancel()
		jobs.Stop()
	}()

	handler := api.NewHandler(s, cfg.Import.MaxBytes)
	mw := api.NewMiddleware(m)

	router := api.NewRouter(handler, mw, api.ServiceResources(s), m.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadTimeout,
		WriteTimeout:      WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		shutdownCtx, stop := context.WithTimeout(ctx, ShutdownTimeout)
		defer stop()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
