package browse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/pkg/enums"
	"github.com/yarotec/storefront/pkg/money"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Category: "Audio", Name: "Parlante Bluetooth", Price: 90000},
		{ID: "2", Category: " AUDIO ", Name: "audífonos", Price: 45000, OnPromotion: true},
		{ID: "3", Category: "Hogar", Name: "Lámpara LED", Price: 30000},
		{ID: "4", Category: "hogar", Name: "Ventilador", Price: 120000, OnPromotion: true},
	}
}

func ids(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func newTestProjector() *Projector {
	return NewProjector(money.Default(), language.Spanish)
}

func TestFilterCategoryIgnoresCaseAndSpace(t *testing.T) {
	t.Parallel()

	got := Filter(sampleProducts(), "", "  audio")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestFilterSearchMatchesNameSubstring(t *testing.T) {
	t.Parallel()

	got := Filter(sampleProducts(), "LAMP", "")
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Empty(t, Filter(sampleProducts(), "lamp", "audio"))
	assert.Len(t, Filter(sampleProducts(), "", ""), 4)
}

func TestFilterSearchFoldsAccents(t *testing.T) {
	t.Parallel()

	for _, term := range []string{"lám", "LÁMPARA", "lampara", "  Lampara led "} {
		got := Filter(sampleProducts(), term, "")
		require.Len(t, got, 1, "term %q", term)
		assert.Equal(t, "3", got[0].ID)
	}
	assert.Equal(t, "lampara", foldSearch("Lámpara"))
	assert.Equal(t, "cafe con leche", foldSearch(" Café con Leche "))
}

func TestBrowseSortOrders(t *testing.T) {
	t.Parallel()

	p := newTestProjector()
	cases := []struct {
		order enums.SortOrder
		want  []string
	}{
		{order: enums.SortCatalog, want: []string{"1", "2", "3", "4"}},
		{order: enums.SortPriceAsc, want: []string{"3", "2", "1", "4"}},
		{order: enums.SortPriceDesc, want: []string{"4", "1", "2", "3"}},
		{order: enums.SortNameAsc, want: []string{"2", "3", "1", "4"}},
		{order: enums.SortNameDesc, want: []string{"4", "1", "3", "2"}},
	}
	for _, tc := range cases {
		res := p.Browse(sampleProducts(), Query{Sort: tc.order})
		assert.Equal(t, tc.want, ids(res.Cards), "order %q", tc.order)
	}
}

func TestBrowseDoesNotReorderInput(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	newTestProjector().Browse(products, Query{Sort: enums.SortPriceDesc})
	assert.Equal(t, "1", products[0].ID)
}

func TestBrowsePagination(t *testing.T) {
	t.Parallel()

	products := make([]catalog.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		products = append(products, catalog.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("P%02d", i)})
	}
	p := newTestProjector()

	first := p.Browse(products, Query{})
	assert.Len(t, first.Cards, 12)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 12, first.PerPage)
	assert.Equal(t, 30, first.Total)
	assert.Equal(t, 3, first.TotalPages)

	last := p.Browse(products, Query{Page: 3})
	assert.Equal(t, []string{"25", "26", "27", "28", "29", "30"}, ids(last.Cards))

	beyond := p.Browse(products, Query{Page: 9})
	assert.Empty(t, beyond.Cards)
	assert.NotNil(t, beyond.Cards)

	capped := p.Browse(products, Query{PerPage: 1000})
	assert.Equal(t, 100, capped.PerPage)
	assert.Len(t, capped.Cards, 30)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "corto", Truncate("corto", 60))
	assert.Equal(t, "", Truncate("", 60))

	long := strings.Repeat("ñ", 80)
	got := Truncate(long, 70)
	assert.Equal(t, strings.Repeat("ñ", 70)+"...", got)
}

func TestCardsUseFormatterAndPlaceholder(t *testing.T) {
	t.Parallel()

	p := newTestProjector()
	prod := catalog.Product{ID: "9", Name: "Cable", Price: 15000, Description: strings.Repeat("a", 65)}

	grid := p.GridCard(prod)
	assert.Equal(t, catalog.PlaceholderImage, grid.Image)
	assert.Equal(t, money.Default().Format(15000), grid.FormattedPrice)
	assert.Equal(t, strings.Repeat("a", 60)+"...", grid.ShortDescription)

	promo := p.PromoCard(prod)
	assert.Equal(t, strings.Repeat("a", 65), promo.ShortDescription)
}

type stubCatalog struct{ products []catalog.Product }

func (s stubCatalog) Promotional(limit int) []catalog.Product {
	if limit <= 0 || limit > len(s.products) {
		return s.products
	}
	return s.products[:limit]
}

func TestPromotions(t *testing.T) {
	t.Parallel()

	p := newTestProjector()

	empty := p.Promotions(stubCatalog{}, 8)
	assert.Empty(t, empty.Cards)
	assert.Equal(t, NoPromotionsNotice, empty.Notice)

	promos := p.Promotions(stubCatalog{products: sampleProducts()[:2]}, 8)
	assert.Equal(t, []string{"1", "2"}, ids(promos.Cards))
	assert.Empty(t, promos.Notice)
}

func TestDetail(t *testing.T) {
	t.Parallel()

	p := newTestProjector()
	d := p.Detail(catalog.Product{
		ID:             "5",
		Name:           "Router",
		Price:          200000,
		PrimaryImage:   "router.png",
		SecondaryImage: "router.png",
		TertiaryImage:  "router-back.png",
	})
	assert.Equal(t, []string{"router.png", "router-back.png"}, d.Images)
	assert.Equal(t, "Sin descripción disponible", d.Description)
	assert.Equal(t, "N/D", d.StockLabel)

	bare := p.Detail(catalog.Product{ID: "6", Stock: 4})
	assert.Equal(t, []string{catalog.PlaceholderImage}, bare.Images)
	assert.Equal(t, "4", bare.StockLabel)
}
