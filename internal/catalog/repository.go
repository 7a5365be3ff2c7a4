package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the catalog document from a backing store (file, Postgres).
type Loader interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// Repository serves the company catalog, caching the whole document with a
// TTL so repeated lookups don't hit the backing store. The cached catalog is
// never mutated; expiry replaces it wholesale.
type Repository struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    *domain.Catalog
	expiresAt time.Time
}

func NewRepository(loader Loader, ttl time.Duration) *Repository {
	return &Repository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Companies returns every catalog company in document order.
func (r *Repository) Companies(ctx context.Context) ([]domain.Company, error) {
	cat, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Companies, nil
}

// Lookup finds one company by ID. An unknown ID is a normal absent result,
// not an error.
func (r *Repository) Lookup(ctx context.Context, companyID string) (domain.Company, bool, error) {
	cat, err := r.catalog(ctx)
	if err != nil {
		return domain.Company{}, false, err
	}
	for _, c := range cat.Companies {
		if c.ID == companyID {
			return c, true, nil
		}
	}
	return domain.Company{}, false, nil
}

// QuestionsFor returns the question set for a company. A company with no
// entry yields an empty set and ok=false; callers treat that as "no
// questions yet", never as a fault.
func (r *Repository) QuestionsFor(ctx context.Context, companyID string) (domain.QuestionSet, bool, error) {
	cat, err := r.catalog(ctx)
	if err != nil {
		return domain.QuestionSet{}, false, err
	}
	qs, ok := cat.QuestionsByCompany[companyID]
	if !ok {
		return domain.QuestionSet{}, false, nil
	}
	return qs, true, nil
}

func (r *Repository) catalog(ctx context.Context) (*domain.Catalog, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		cat := r.cached
		r.mu.RUnlock()
		return cat, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			cat := r.cached
			r.mu.RUnlock()
			return cat, nil
		}
		r.mu.RUnlock()

		cat, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
		}
		if err := Validate(cat); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
		}

		r.mu.Lock()
		r.cached = &cat
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return &cat, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Catalog), nil
}

func (r *Repository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter so a fleet doesn't reload in lockstep
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// Validate rejects structurally broken catalogs: blank or duplicate company
// IDs, MCQs without choices, or answer indices outside the choice list.
func Validate(cat domain.Catalog) error {
	seen := make(map[string]struct{}, len(cat.Companies))
	for _, c := range cat.Companies {
		if c.ID == "" {
			return fmt.Errorf("company %q has empty id", c.Name)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate company id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	for companyID, qs := range cat.QuestionsByCompany {
		for i, q := range qs.Mcq {
			if len(q.Choices) == 0 {
				return fmt.Errorf("company %q mcq %d has no choices", companyID, i)
			}
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				return fmt.Errorf("company %q mcq %d answer index %d out of range", companyID, i, q.Answer)
			}
		}
	}
	return nil
}
