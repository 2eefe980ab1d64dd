package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/emilythestrangee/posts-gateway/backend/internal/config"
	"github.com/emilythestrangee/posts-gateway/backend/internal/database"
	"github.com/emilythestrangee/posts-gateway/backend/internal/repository"
	"github.com/emilythestrangee/posts-gateway/backend/internal/server"
)

func main() {
	started := time.Now()

	conf, err := config.Load(".env")
	if err != nil {
		log.Fatalf("[SETUP ERROR] error when reading config: %v", err)
	}

	if err := run(conf, started); err != nil {
		log.Fatalf("[APPLICATION ERROR] error: %v", err)
	}

	log.Println("[SHUTDOWN] server stopped")
}

func run(conf *config.Config, started time.Time) error {
	db, err := database.New(conf.Database, !conf.IsProduction())
	if err != nil {
		return err
	}
	defer db.Close()

	log.Printf("📊 Database status: %v", db.Health())

	posts := repository.NewPostRepository(db.GetDB())
	srv := server.New(conf, posts, started).NewServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[SHUTDOWN] signal received, shutting down")
	return shutdown(srv, conf.ShutdownTimeout)
}

// shutdown closes listeners and open connections at once unless a drain timeout is configured.
func shutdown(srv *http.Server, timeout time.Duration) error {
	if timeout <= 0 {
		return srv.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
