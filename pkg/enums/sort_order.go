package enums

import (
	"fmt"
	"strings"
)

// SortOrder is the browse ordering selected by the shopper.
type SortOrder string

const (
	SortCatalog   SortOrder = ""
	SortPriceAsc  SortOrder = "precio-asc"
	SortPriceDesc SortOrder = "precio-desc"
	SortNameAsc   SortOrder = "nombre-asc"
	SortNameDesc  SortOrder = "nombre-desc"
)

var validSortOrders = []SortOrder{
	SortCatalog,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

// String implements fmt.Stringer.
func (s SortOrder) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOrder.
func (s SortOrder) IsValid() bool {
	for _, candidate := range validSortOrders {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortOrder converts raw input into a SortOrder. Matching ignores case and
// surrounding whitespace.
func ParseSortOrder(value string) (SortOrder, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validSortOrders {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
