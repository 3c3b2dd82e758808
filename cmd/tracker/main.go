package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"case-tracker/internal/config"
	"case-tracker/internal/logger"
	"case-tracker/internal/service/cases"
	"case-tracker/internal/service/export"
	"case-tracker/internal/service/production"
	"case-tracker/internal/standards"
	"case-tracker/internal/storage/mysql"
	"case-tracker/internal/unitseq"
)

func main() {
	cfg := config.MustConfig()

	log := logger.Setup(cfg.Env)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := storage.Init(initCtx); err != nil {
		cancel()
		log.Error("failed to init schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cancel()

	// без файла стандартов сервер стартует с пустой таблицей, её можно импортировать
	std, err := standards.Load(cfg.StandardsPath())
	if err != nil {
		log.Warn("standards not loaded", slog.String("path", std.Path()), slog.String("error", err.Error()))
	}

	units, err := unitseq.Load(cfg.UnitsEqPath())
	if err != nil {
		log.Warn("units table not loaded", slog.String("path", cfg.UnitsEqPath()), slog.String("error", err.Error()))
		units = unitseq.Table{}
	}

	if cfg.AdminLogin == "" || cfg.AdminPass == "" {
		log.Warn("admin credentials not set, standards editor is locked")
	}

	svc := services{
		cases:      cases.NewService(storage, std),
		production: production.NewService(storage, units),
		export:     export.NewService(storage),
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, storage, std, units, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
