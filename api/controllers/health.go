package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/yarotec/storefront/api/responses"
	"github.com/yarotec/storefront/pkg/config"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
	"github.com/yarotec/storefront/pkg/logger"
)

const envHeader = "X-Storefront-Env"

// Pinger is satisfied by the kv backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type catalogStatus interface {
	Loaded() bool
	Source() string
	Len() int
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once storage answers. An unloaded catalog is
// reported but does not fail readiness; the API serves it empty.
func HealthReady(cfg *config.Config, logg *logger.Logger, storage Pinger, catalog catalogStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if storage != nil {
			if err := storage.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable"))
				return
			}
		}

		body := map[string]any{"status": "ready"}
		if catalog != nil {
			body["catalog"] = map[string]any{
				"loaded":   catalog.Loaded(),
				"source":   catalog.Source(),
				"products": catalog.Len(),
			}
		}
		responses.WriteSuccess(w, body)
	}
}
