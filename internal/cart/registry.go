package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/yarotec/storefront/pkg/kv"
	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/metrics"
	"github.com/yarotec/storefront/pkg/money"
)

// DefaultNamespace prefixes every cart key.
const DefaultNamespace = "yarotec_cart_v1"

// lockStripes bounds the per-key locks the registry keeps regardless of how
// many sessions it has served.
const lockStripes = 64

type RegistryParams struct {
	Namespace string
	KV        kv.Store
	Logger    *logger.Logger
	Metrics   *metrics.Storefront
	Formatter *money.Formatter
}

// Registry opens a session's Store from the kv backend on every Get. It holds
// no carts itself; Stores opened on the same key share one striped lock so
// their read-modify-write cycles never interleave within a process.
type Registry struct {
	params RegistryParams
	locks  [lockStripes]sync.Mutex
}

func NewRegistry(p RegistryParams) *Registry {
	if strings.TrimSpace(p.Namespace) == "" {
		p.Namespace = DefaultNamespace
	}
	return &Registry{params: p}
}

// KeyFor returns the storage key for a session. An empty session maps to the
// bare namespace.
func (r *Registry) KeyFor(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return r.params.Namespace
	}
	return r.params.Namespace + ":" + sessionID
}

// Get restores the session's cart from storage.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	key := r.KeyFor(sessionID)
	return NewStore(ctx, StoreParams{
		Key:       key,
		KV:        r.params.KV,
		Logger:    r.params.Logger,
		Metrics:   r.params.Metrics,
		Formatter: r.params.Formatter,
		Lock:      r.lockFor(key),
	})
}

func (r *Registry) lockFor(key string) *sync.Mutex {
	return &r.locks[xxhash.Sum64String(key)%lockStripes]
}
