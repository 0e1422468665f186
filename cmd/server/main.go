package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biblionet/internal/config"
	"biblionet/internal/db"
	"biblionet/internal/httpserver"
	"biblionet/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := httpserver.InitLogger(cfg.Log.Level)
	logger.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("close db", "error", err)
		}
	}()

	books := repository.NewBookRepository(d)
	users := repository.NewUserRepository(d)
	loans := repository.NewLoanRepository(d)

	srv := httpserver.New(books, users, loans)
	shutdown, err := srv.Start(cfg.HTTP.Address)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}
	logger.Info("http server listening", "address", cfg.HTTP.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
