package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"train-task-tracker/internal/auth"
	"train-task-tracker/internal/routes"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long:  "Starts the HTTP API. The cached dataset is loaded at startup; nothing is fetched while a cache exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, noCache)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "keep the dataset in memory only")
	return cmd
}

func runServe(cmd *cobra.Command, port int, noCache bool) error {
	a, err := openApp(cmd, noCache)
	if err != nil {
		return err
	}
	if port == 0 {
		port = a.cfg.Server.Port
	}
	if auth.UsingDevSecret() {
		log.Println("WARNING: JWT_SECRET is not set, tokens are signed with the development secret")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Warm the dataset so the first request is served from memory.
	if _, err := a.svc.Dataset(ctx); err != nil {
		log.Printf("initial dataset load failed, will retry on first request: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           routes.SetupRoutes(a.svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %d", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/cars, /api/completions")
	log.Println("  PATCH  /api/completions/:id/status")
	log.Println("  GET    /api/dashboard?trains=&sort=")
	log.Println("  POST   /api/dashboard/refresh")
	log.Println("  GET    /api/dashboard/export.xlsx")
	log.Println("  GET    /ws")
	log.Println("  GET    /health")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}
