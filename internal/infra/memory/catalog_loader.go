package memory

import (
	"context"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
)

// StaticCatalogLoader serves a fixed in-memory catalog (useful for tests and
// demos).
type StaticCatalogLoader struct {
	catalog domain.Catalog
}

func NewStaticCatalogLoader(cat domain.Catalog) *StaticCatalogLoader {
	return &StaticCatalogLoader{catalog: cat}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	return l.catalog, nil
}
