package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/catalog"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/config"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/history"
	filestore "github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/file"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/memory"
	pgloader "github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/postgres"
	redisstore "github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/redis"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/progress"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/storage"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/tracker"
	transport "github.com/Pottaprashanth/Interview-preparation-hub/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the prep hub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	// State store: Redis when configured, otherwise file-per-key under the
	// state dir, otherwise purely in-memory.
	var store storage.Store
	switch {
	case cfg.Redis.Addr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = redisstore.NewKV(client, config.TTLDuration(cfg.Redis.TTL, 0))
	case cfg.State.Dir != "":
		store, err = filestore.NewKV(cfg.State.Dir)
		if err != nil {
			return err
		}
	default:
		log.Printf("no state backend configured; progress will not survive restarts")
		store = memory.NewKV()
	}

	// Catalog: Postgres when configured, otherwise the static JSON file.
	var loader catalog.Loader
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewCatalogLoader(pool, catalogID(cfg))
	} else {
		path := cfg.Catalog.Path
		if path == "" {
			path = "data/companies.json"
		}
		loader = filestore.NewCatalogLoader(path)
	}
	catalogRepo := catalog.NewRepository(loader, config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute))

	// Catalog fetch failure is fatal to startup, surfaced before serving.
	if _, err := catalogRepo.Companies(ctx); err != nil {
		return err
	}

	ledger := history.NewLedger(store)
	prog := progress.NewService(store)
	trk := tracker.NewService(store, prog)
	ws := transport.NewWSHandler(catalogRepo, ledger, prog)
	api := transport.NewAPI(catalogRepo, ledger, prog, trk, ws)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting prep hub on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func catalogID(cfg config.Config) string {
	if cfg.Catalog.ID != "" {
		return cfg.Catalog.ID
	}
	return "default"
}
