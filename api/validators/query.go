package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yarotec/storefront/pkg/enums"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQuerySort reads a browse sort order; an absent value keeps catalog order.
func ParseQuerySort(r *http.Request, key string) (enums.SortOrder, error) {
	order, err := enums.ParseSortOrder(r.URL.Query().Get(key))
	if err != nil {
		return enums.SortCatalog, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order").WithDetails(map[string]any{"field": key})
	}
	return order, nil
}
