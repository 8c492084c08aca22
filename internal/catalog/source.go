package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yarotec/storefront/pkg/config"
)

//go:embed fallback.json
var fallbackDocument []byte

// Source yields raw catalog records. Implementations fail as a whole; the
// store moves on to the next source.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Record, error)
}

// ErrNoSeed is returned by a SeededSource with no records configured.
var ErrNoSeed = errors.New("no seeded catalog records")

// SeededSource serves records injected at construction: an inline document
// from configuration, or fixtures in tests.
type SeededSource struct {
	records []Record
}

func NewSeededSource(records []Record) *SeededSource {
	return &SeededSource{records: records}
}

func (s *SeededSource) Name() string { return "seeded" }

func (s *SeededSource) Fetch(context.Context) ([]Record, error) {
	if s == nil || s.records == nil {
		return nil, ErrNoSeed
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// FileSource reads a catalog document from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	return DecodeDocument(payload)
}

// HTTPSource fetches a catalog document over HTTP(S).
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

// WithClient swaps the HTTP client, used by tests.
func (s *HTTPSource) WithClient(client *http.Client) *HTTPSource {
	if client != nil {
		s.client = client
	}
	return s
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return DecodeDocument(payload)
}

// EmbeddedSource serves the minimal catalog compiled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() EmbeddedSource { return EmbeddedSource{} }

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Fetch(context.Context) ([]Record, error) {
	return DecodeDocument(fallbackDocument)
}

// ResourceSource picks the HTTP or file source for a catalog location.
func ResourceSource(location string, timeout time.Duration) Source {
	lower := strings.ToLower(strings.TrimSpace(location))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(strings.TrimSpace(location), timeout)
	}
	return NewFileSource(strings.TrimSpace(location))
}

// Sources builds the load cascade for cfg: the inline seed when configured,
// then the catalog resource, then the embedded fallback when enabled.
func Sources(cfg config.CatalogConfig) ([]Source, error) {
	var sources []Source
	if seed := strings.TrimSpace(cfg.Seed); seed != "" {
		records, err := DecodeDocument([]byte(seed))
		if err != nil {
			return nil, fmt.Errorf("catalog seed: %w", err)
		}
		sources = append(sources, NewSeededSource(records))
	}
	if strings.TrimSpace(cfg.Source) != "" {
		sources = append(sources, ResourceSource(cfg.Source, cfg.FetchTimeout))
	}
	if cfg.EmbeddedFallback {
		sources = append(sources, NewEmbeddedSource())
	}
	return sources, nil
}
