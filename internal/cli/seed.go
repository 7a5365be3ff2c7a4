package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/catalog"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/config"
	filestore "github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/file"
	pgloader "github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the JSON catalog file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the Postgres catalog from the JSON catalog file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	path := cfg.Catalog.Path
	if path == "" {
		path = "data/companies.json"
	}

	cat, err := filestore.NewCatalogLoader(path).LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if err := catalog.Validate(cat); err != nil {
		return err
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pgloader.Seed(ctx, pool, catalogID(cfg), cat); err != nil {
		return err
	}
	log.Printf("seeded catalog %q with %d companies", catalogID(cfg), len(cat.Companies))
	return nil
}
