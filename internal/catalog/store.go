package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/metrics"
)

// LoadError reports that every catalog source failed.
type LoadError struct {
	Attempts []string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load failed after %s: %v", strings.Join(e.Attempts, ", "), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Errors lists the per-source failures in attempt order.
func (e *LoadError) Errors() []error { return multierr.Errors(e.Err) }

type StoreParams struct {
	Sources    []Source
	Normalizer *Normalizer
	Logger     *logger.Logger
	Metrics    *metrics.Storefront
}

// Store holds the normalized catalog. Reads are safe while a reload runs.
type Store struct {
	sources    []Source
	normalizer *Normalizer
	logg       *logger.Logger
	metrics    *metrics.Storefront

	mu       sync.RWMutex
	products []Product
	byID     map[string]int
	source   string
	loaded   bool
}

func NewStore(p StoreParams) *Store {
	norm := p.Normalizer
	if norm == nil {
		norm = defaultNormalizer
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		sources:    append([]Source(nil), p.Sources...),
		normalizer: norm,
		logg:       logg,
		metrics:    p.Metrics,
	}
}

// Load tries each source in order and keeps the first that succeeds. When all
// fail the store is emptied and a *LoadError is returned.
func (s *Store) Load(ctx context.Context) (int, error) {
	var (
		errs     error
		attempts []string
	)

	for _, src := range s.sources {
		if src == nil {
			continue
		}
		name := src.Name()
		attempts = append(attempts, name)

		records, err := src.Fetch(ctx)
		if err != nil {
			s.metrics.CatalogLoad(name, false)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			warnCtx := s.logg.WithFields(ctx, map[string]any{"source": name, "error": err.Error()})
			s.logg.Warn(warnCtx, "catalog source failed")
			continue
		}

		products := s.normalizer.Normalize(records)
		s.replace(products, name)
		s.metrics.CatalogLoad(name, true)
		s.metrics.CatalogSize(len(products))

		infoCtx := s.logg.WithFields(ctx, map[string]any{
			"source":      name,
			"products":    len(products),
			"promotional": len(s.Promotional(0)),
		})
		s.logg.Info(infoCtx, "catalog loaded")
		return len(products), nil
	}

	s.replace(nil, "")
	s.metrics.CatalogSize(0)
	if errs == nil {
		errs = fmt.Errorf("no catalog sources configured")
	}
	return 0, &LoadError{Attempts: attempts, Err: errs}
}

func (s *Store) replace(products []Product, source string) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		if _, seen := index[p.ID]; !seen {
			index[p.ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.byID = index
	s.source = source
	s.loaded = source != ""
}

// All returns the catalog in ingestion order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID returns the first product carrying id.
func (s *Store) ByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, false
	}
	return s.products[idx], true
}

// Promotional returns up to limit promoted products; limit <= 0 uses the default.
func (s *Store) Promotional(limit int) []Product {
	if limit <= 0 {
		limit = DefaultPromotionLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, limit)
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if p.OnPromotion {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category keys, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range s.products {
		key := p.CategoryKey()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Source names the strategy that produced the current catalog.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len is the number of products currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
