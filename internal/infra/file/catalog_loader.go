// Package file holds the filesystem-backed infrastructure: the static JSON
// catalog loader and the file-per-key state store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
)

// CatalogLoader reads the static catalog document (companies.json) from disk.
type CatalogLoader struct {
	path string
}

func NewCatalogLoader(path string) *CatalogLoader {
	return &CatalogLoader{path: path}
}

func (l *CatalogLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var cat domain.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return cat, nil
}
