package browse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yarotec/storefront/internal/catalog"
)

const (
	// GridDescriptionLimit bounds descriptions on the product grid.
	GridDescriptionLimit = 60
	// PromoDescriptionLimit bounds descriptions on promotional cards.
	PromoDescriptionLimit = 70

	missingDescription = "Sin descripción disponible"
	missingStock       = "N/D"
)

// Card is the compact product view used by grids and carousels.
type Card struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Price            int64  `json:"price"`
	FormattedPrice   string `json:"formatted_price"`
	Stock            int    `json:"stock"`
	Image            string `json:"image"`
	OnPromotion      bool   `json:"on_promotion"`
}

// Promotions is the promotional carousel. Notice is set only when it is empty.
type Promotions struct {
	Cards  []Card `json:"cards"`
	Notice string `json:"notice,omitempty"`
}

// Detail is the full product view.
type Detail struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	FormattedPrice string   `json:"formatted_price"`
	Stock          int      `json:"stock"`
	StockLabel     string   `json:"stock_label"`
	Images         []string `json:"images"`
	OnPromotion    bool     `json:"on_promotion"`
}

// Truncate cuts s to limit runes and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

func (p *Projector) card(prod catalog.Product, limit int) Card {
	return Card{
		ID:               prod.ID,
		Name:             prod.Name,
		ShortDescription: Truncate(prod.Description, limit),
		Price:            prod.Price,
		FormattedPrice:   p.formatter.Format(prod.Price),
		Stock:            prod.Stock,
		Image:            catalog.ImageOrPlaceholder(prod.PrimaryImage),
		OnPromotion:      prod.OnPromotion,
	}
}

// GridCard projects a product for the browse grid.
func (p *Projector) GridCard(prod catalog.Product) Card {
	return p.card(prod, GridDescriptionLimit)
}

// PromoCard projects a product for the promotional carousel.
func (p *Projector) PromoCard(prod catalog.Product) Card {
	return p.card(prod, PromoDescriptionLimit)
}

// Promotions builds the carousel from the catalog's promotional prefix.
func (p *Projector) Promotions(cat Catalog, limit int) Promotions {
	products := cat.Promotional(limit)
	if len(products) == 0 {
		return Promotions{Cards: []Card{}, Notice: NoPromotionsNotice}
	}
	cards := make([]Card, 0, len(products))
	for _, prod := range products {
		cards = append(cards, p.PromoCard(prod))
	}
	return Promotions{Cards: cards}
}

// Detail builds the product detail view. Images are deduplicated, primary first.
func (p *Projector) Detail(prod catalog.Product) Detail {
	desc := strings.TrimSpace(prod.Description)
	if desc == "" {
		desc = missingDescription
	}
	stockLabel := missingStock
	if prod.Stock > 0 {
		stockLabel = strconv.Itoa(prod.Stock)
	}

	seen := map[string]struct{}{}
	images := make([]string, 0, 3)
	for _, img := range prod.Images() {
		img = catalog.ImageOrPlaceholder(img)
		if _, dup := seen[img]; dup {
			continue
		}
		seen[img] = struct{}{}
		images = append(images, img)
	}
	if len(images) == 0 {
		images = append(images, catalog.PlaceholderImage)
	}

	return Detail{
		ID:             prod.ID,
		Category:       prod.Category,
		Name:           prod.Name,
		Description:    desc,
		Price:          prod.Price,
		FormattedPrice: p.formatter.Format(prod.Price),
		Stock:          prod.Stock,
		StockLabel:     stockLabel,
		Images:         images,
		OnPromotion:    prod.OnPromotion,
	}
}
