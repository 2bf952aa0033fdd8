// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jeorgesilva/lianes-library/internal/accounts"
	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
	"github.com/jeorgesilva/lianes-library/internal/circulation"
	"github.com/jeorgesilva/lianes-library/internal/config"
	"github.com/jeorgesilva/lianes-library/internal/observability"
	"github.com/jeorgesilva/lianes-library/internal/postgres"
	"github.com/jeorgesilva/lianes-library/internal/reports"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("api: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracing, err := observability.SetupTracing(ctx, "lianes-library", cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("failed to shut down tracing: %v", err)
		}
	}()

	db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.QueryTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	catalogSvc := catalog.NewService(catalog.NewPostgresStore(db))
	borrowerSvc := borrowers.NewService(borrowers.NewPostgresStore(db))
	circulationSvc := circulation.NewService(circulation.NewPostgresStore(db), cfg.LoanPeriodDays)
	reportSvc := reports.NewService(reports.NewPostgresStore(db))
	accountSvc := accounts.NewService(accounts.NewPostgresStore(db))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/books", catalog.NewHandler(catalogSvc).Routes)
		r.Route("/borrowers", borrowers.NewHandler(borrowerSvc).Routes)
		r.Route("/accounts", accounts.NewHandler(accountSvc).Routes)
		circulation.NewHandler(circulationSvc).Routes(r)
		reports.NewHandler(reportSvc).Routes(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
