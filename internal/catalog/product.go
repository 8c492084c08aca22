package catalog

import "strings"

const (
	// UnnamedProduct is shown when a record carries no usable name.
	UnnamedProduct = "Producto sin nombre"
	// PlaceholderImage replaces missing or unloadable images.
	PlaceholderImage = "placeholder.png"
	// DefaultPromotionLimit caps the promotional carousel.
	DefaultPromotionLimit = 8
)

// Product is the canonical catalog entry. Values are immutable once normalized.
type Product struct {
	ID             string `json:"id"`
	Category       string `json:"category"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	Stock          int    `json:"stock"`
	Description    string `json:"description"`
	PrimaryImage   string `json:"primary_image"`
	SecondaryImage string `json:"secondary_image,omitempty"`
	TertiaryImage  string `json:"tertiary_image,omitempty"`
	OnPromotion    bool   `json:"on_promotion"`
}

// CategoryKey is the case and whitespace insensitive form used for matching.
func (p Product) CategoryKey() string {
	return CategoryKey(p.Category)
}

// CategoryKey normalizes a free-text category label for comparisons.
func CategoryKey(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// Images returns the non-empty image references in display order.
func (p Product) Images() []string {
	images := make([]string, 0, 3)
	for _, img := range []string{p.PrimaryImage, p.SecondaryImage, p.TertiaryImage} {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	return images
}

// ImageOrPlaceholder resolves an image reference for display.
func ImageOrPlaceholder(name string) string {
	if strings.TrimSpace(name) == "" {
		return PlaceholderImage
	}
	return strings.TrimSpace(name)
}
