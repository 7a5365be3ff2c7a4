package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads the catalog JSONB document from Postgres.
type CatalogLoader struct {
	pool      *pgxpool.Pool
	catalogID string
}

func NewCatalogLoader(pool *pgxpool.Pool, catalogID string) *CatalogLoader {
	return &CatalogLoader{pool: pool, catalogID: catalogID}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM catalogs WHERE id=$1`, l.catalogID).Scan(&raw)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	var cat domain.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return cat, nil
}

// Seed upserts a catalog document, used by the seed CLI command and tests.
func Seed(ctx context.Context, pool *pgxpool.Pool, catalogID string, cat domain.Catalog) error {
	raw, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO catalogs (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		catalogID, raw)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
