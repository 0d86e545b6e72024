package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/config"
	"github.com/Lixing-Zhang/tableside-pos/internal/handlers"
	"github.com/Lixing-Zhang/tableside-pos/internal/menuseed"
	"github.com/Lixing-Zhang/tableside-pos/internal/middleware"
	"github.com/Lixing-Zhang/tableside-pos/internal/repository"
	"github.com/Lixing-Zhang/tableside-pos/internal/service"
	"github.com/Lixing-Zhang/tableside-pos/internal/storage"
	"github.com/Lixing-Zhang/tableside-pos/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// draftTTL bounds how long an untouched draft is kept.
const draftTTL = 12 * time.Hour

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting tableside pos server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage", cfg.Storage.Backend,
		"tables", cfg.Restaurant.TableCount,
		"log_level", cfg.LogLevel,
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run wires the application and serves until an interrupt signal arrives.
func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	// Open the blob store the restaurant state is mirrored into
	blobs, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	// Load the restaurant state
	defaults := service.Defaults{TableCount: cfg.Restaurant.TableCount}
	if cfg.Restaurant.SeedMenu {
		defaults.Menu = menuseed.HouseMenu()
		defaults.Categories = menuseed.CategoriesOf(defaults.Menu)
	}
	repo := repository.NewRestaurantRepository(blobs, log)
	store := service.NewStore(ctx, repo, defaults, log)

	if len(cfg.Restaurant.MenuSeedFiles) > 0 {
		importSeedFiles(ctx, store, cfg.Restaurant.MenuSeedFiles, log)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(blobs.Name(), log)
	api := handlers.Handlers{
		Tables: handlers.NewTableHandler(store, log),
		Menu:   handlers.NewMenuHandler(store, log),
		Drafts: handlers.NewDraftHandler(service.NewDraftBook(draftTTL), store, log),
	}

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", api.Mount)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

// importSeedFiles adds the entries of the configured seed files to the menu.
// Failures are logged and startup continues with the menu as loaded.
func importSeedFiles(ctx context.Context, store *service.Store, sources []string, log *slog.Logger) {
	log.Info("loading menu seed files...", "files", len(sources))

	entries, err := menuseed.NewLoader().Load(ctx, sources)
	if err != nil {
		log.Error("failed to load menu seed files", "error", err)
		return
	}

	added, err := store.ImportMenu(ctx, menuseed.Inputs(entries))
	if err != nil {
		log.Warn("some seed entries were rejected", "error", err)
	}
	log.Info("menu seed files imported", "entries", len(entries), "added", added)
}
