package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/quizengine/internal/api"
	"github.com/vytor/quizengine/internal/config"
	"github.com/vytor/quizengine/internal/db"
	"github.com/vytor/quizengine/internal/jobs"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/repository/sqlite"
	"github.com/vytor/quizengine/internal/services"
	"github.com/vytor/quizengine/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Quiz Engine Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("quiz_dir=%s", cfg.QuizDir)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("cors_origins=%v", cfg.CORSOrigins)
	log.Debug("request_timeout=%v", cfg.RequestTimeout)

	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	quizRepo := sqlite.NewQuizRepository(database)
	attemptRepo := sqlite.NewAttemptRepository(database)

	quizService := services.NewQuizService(quizRepo)
	attemptService := services.NewAttemptService(attemptRepo, quizRepo)

	importPool := worker.NewPool("import-pool", cfg.ImportWorkerCount, cfg.ImportQueueSize)
	queue := jobs.NewWorkerQueue(importPool, quizService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	importPool.Start(ctx)

	if cfg.QuizDir != "" {
		n, err := jobs.EnqueueQuizDir(ctx, queue, cfg.QuizDir)
		if err != nil {
			log.Warn("quiz directory import incomplete after %d files: %v", n, err)
		} else {
			log.Info("queued %d quiz files from %s", n, cfg.QuizDir)
		}
	}

	srv := &api.Server{
		QuizService:    quizService,
		AttemptService: attemptService,
		DB:             database,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("Quiz Engine Server Stopped")
	log.Info("===========================================")
}
