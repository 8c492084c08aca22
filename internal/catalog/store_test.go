package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/metrics"
)

type failingSource struct {
	name string
	err  error
}

func (f failingSource) Name() string { return f.name }

func (f failingSource) Fetch(context.Context) ([]Record, error) { return nil, f.err }

func promoRecords(total, promoted int) []Record {
	records := make([]Record, 0, total)
	for i := 0; i < total; i++ {
		flag := "no"
		if i < promoted {
			flag = "si"
		}
		records = append(records, Record{
			"id":        i + 1,
			"categoria": "Cat",
			"nombre":    fmt.Sprintf("Producto %d", i+1),
			"precio":    1000 * (i + 1),
			"promocion": flag,
		})
	}
	return records
}

func TestStoreLoadPrefersSeeded(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{Sources: []Source{
		NewSeededSource(promoRecords(3, 1)),
		NewEmbeddedSource(),
	}})

	n, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "seeded", store.Source())
	assert.True(t, store.Loaded())
}

func TestStoreLoadFallsThroughToEmbedded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewStore(StoreParams{Sources: []Source{
		NewSeededSource(nil),
		NewHTTPSource(srv.URL, time.Second),
		NewEmbeddedSource(),
	}})

	n, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "embedded", store.Source())

	p, ok := store.ByID("9991")
	require.True(t, ok)
	assert.Equal(t, "Producto de ejemplo 1", p.Name)
	assert.Equal(t, int64(100000), p.Price)
	assert.True(t, p.OnPromotion)
}

func TestStoreLoadFromHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"productos":[{"id":1,"concatenado":"Monitor","precio":800000}]}`))
	}))
	defer srv.Close()

	store := NewStore(StoreParams{Sources: []Source{ResourceSource(srv.URL, time.Second), NewEmbeddedSource()}})
	n, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "http", store.Source())
}

func TestStoreLoadMalformedPayloadFallsThrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	store := NewStore(StoreParams{Sources: []Source{NewHTTPSource(srv.URL, time.Second), NewEmbeddedSource()}})
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "embedded", store.Source())
}

func TestStoreLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x1","nombre":"Silla"}]`), 0o600))

	store := NewStore(StoreParams{Sources: []Source{ResourceSource(path, 0)}})
	n, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "file", store.Source())
}

func TestStoreLoadAllFail(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	boom := errors.New("boom")
	store := NewStore(StoreParams{
		Sources: []Source{
			NewSeededSource(promoRecords(2, 2)),
		},
		Metrics: m,
	})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	store.sources = []Source{failingSource{name: "a", err: boom}, failingSource{name: "b", err: boom}}
	n, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, n)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, []string{"a", "b"}, loadErr.Attempts)
	assert.Len(t, loadErr.Errors(), 2)
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, store.All())
	assert.False(t, store.Loaded())
	expected := `
# HELP catalog_products Products held by the catalog store after the last load.
# TYPE catalog_products gauge
catalog_products 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "catalog_products"))
}

func TestStoreQueriesBeforeLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{})
	assert.Empty(t, store.All())
	assert.Empty(t, store.Promotional(0))
	assert.Empty(t, store.Categories())
	_, ok := store.ByID("1")
	assert.False(t, ok)
}

func TestStorePromotionalBound(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{Sources: []Source{NewSeededSource(promoRecords(15, 10))}})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	promos := store.Promotional(8)
	require.Len(t, promos, 8)
	for i, p := range promos {
		assert.True(t, p.OnPromotion)
		assert.Equal(t, fmt.Sprint(i+1), p.ID)
	}
	assert.Len(t, store.Promotional(0), 8)
	assert.Len(t, store.Promotional(20), 10)
}

func TestStoreByIDFirstOccurrence(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{Sources: []Source{NewSeededSource([]Record{
		{"id": "dup", "nombre": "Primero"},
		{"id": "dup", "nombre": "Segundo"},
	})}})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	p, ok := store.ByID("dup")
	require.True(t, ok)
	assert.Equal(t, "Primero", p.Name)
	assert.Len(t, store.All(), 2)
}

func TestStoreCategories(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{Sources: []Source{NewSeededSource([]Record{
		{"categoria": "hogar"},
		{"categoria": " HOGAR "},
		{"categoria": "Audio"},
		{"categoria": ""},
	})}})
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AUDIO", "HOGAR"}, store.Categories())
}

func TestStoreAllReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreParams{Sources: []Source{NewSeededSource(promoRecords(2, 0))}})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	all := store.All()
	all[0].Name = "mutated"
	assert.NotEqual(t, "mutated", store.All()[0].Name)
}

func TestSourcesFromConfig(t *testing.T) {
	t.Parallel()

	sources, err := Sources(config.CatalogConfig{
		Seed:             `{"productos":[{"ID":7,"CONCATENADO":"Sembrado","PRECIO":700}]}`,
		Source:           "https://cdn.example.com/products.json",
		FetchTimeout:     time.Second,
		EmbeddedFallback: true,
	})
	require.NoError(t, err)
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())
	}
	assert.Equal(t, []string{"seeded", "http", "embedded"}, names)

	store := NewStore(StoreParams{Sources: sources})
	n, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "seeded", store.Source())
	p, ok := store.ByID("7")
	require.True(t, ok)
	assert.Equal(t, int64(700), p.Price)

	sources, err = Sources(config.CatalogConfig{Source: "./data/products.json"})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "file", sources[0].Name())

	_, err = Sources(config.CatalogConfig{Seed: `"just a string"`})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
