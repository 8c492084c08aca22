// Package browse projects catalog products into the views the storefront
// renders: filtered and sorted product grids, promotional cards and the
// product detail view.
package browse

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/pkg/enums"
	"github.com/yarotec/storefront/pkg/money"
	"github.com/yarotec/storefront/pkg/pagination"
)

// NoPromotionsNotice is shown in place of an empty promotional carousel.
const NoPromotionsNotice = "No hay productos en promoción en este momento"

// Query holds the shopper's grid controls. Zero values mean "no filter".
type Query struct {
	Search   string
	Category string
	Sort     enums.SortOrder
	Page     int
	PerPage  int
}

// Result is one page of cards plus the paging facts needed to render controls.
type Result struct {
	Cards      []Card `json:"cards"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

// Catalog is the read side the projector needs.
type Catalog interface {
	Promotional(limit int) []catalog.Product
}

type Projector struct {
	formatter *money.Formatter
	collation language.Tag
}

func NewProjector(formatter *money.Formatter, tag language.Tag) *Projector {
	if formatter == nil {
		formatter = money.Default()
	}
	if tag == language.Und {
		tag = language.Spanish
	}
	return &Projector{formatter: formatter, collation: tag}
}

// Browse filters, sorts and pages products. The input slice is not modified.
func (p *Projector) Browse(products []catalog.Product, q Query) Result {
	matched := Filter(products, q.Search, q.Category)
	p.sortProducts(matched, q.Sort)

	window := pagination.Compute(pagination.Params{Page: q.Page, Limit: q.PerPage}, len(matched))
	cards := make([]Card, 0, window.End-window.Start)
	for _, prod := range matched[window.Start:window.End] {
		cards = append(cards, p.GridCard(prod))
	}
	return Result{
		Cards:      cards,
		Page:       window.Page,
		PerPage:    window.Limit,
		Total:      window.Total,
		TotalPages: window.TotalPages,
	}
}

// Filter keeps products whose folded name contains the folded search term
// and whose category key equals category. Empty criteria match everything.
func Filter(products []catalog.Product, search, category string) []catalog.Product {
	term := foldSearch(search)
	catKey := catalog.CategoryKey(category)

	out := make([]catalog.Product, 0, len(products))
	for _, prod := range products {
		if term != "" && !strings.Contains(foldSearch(prod.Name), term) {
			continue
		}
		if catKey != "" && prod.CategoryKey() != catKey {
			continue
		}
		out = append(out, prod)
	}
	return out
}

// foldSearch lower-cases s and strips combining marks, so "LAMP" matches
// "Lámpara". Transformers keep state, so one chain is built per call.
func foldSearch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		return s
	}
	return folded
}

func (p *Projector) sortProducts(products []catalog.Product, order enums.SortOrder) {
	switch order {
	case enums.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case enums.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case enums.SortNameAsc, enums.SortNameDesc:
		// Collators keep state and are not safe to share across goroutines.
		col := collate.New(p.collation, collate.IgnoreCase)
		desc := order == enums.SortNameDesc
		sort.SliceStable(products, func(i, j int) bool {
			cmp := col.CompareString(products[i].Name, products[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}
