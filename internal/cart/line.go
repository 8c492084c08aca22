package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one cart entry. Name and Price are snapshotted when the product is
// first added, so later catalog changes do not reprice the cart.
type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal is Price times Quantity.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// storedLine is the persisted shape, kept compatible with carts written by the
// storefront's browser client.
type storedLine struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"nombre"`
	Price int64           `json:"precio"`
	Qty   int             `json:"qty"`
}

func encodeLines(lines []Line) ([]byte, error) {
	stored := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		id, err := json.Marshal(l.ProductID)
		if err != nil {
			return nil, err
		}
		stored = append(stored, storedLine{ID: id, Name: l.Name, Price: l.Price, Qty: l.Quantity})
	}
	return json.Marshal(stored)
}

// decodeLines rejects the whole payload when any entry is unusable; a partly
// valid cart is not restored.
func decodeLines(payload []byte) ([]Line, error) {
	var stored []storedLine
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(stored))
	for i, s := range stored {
		id := decodeID(s.ID)
		if id == "" {
			return nil, &corruptLineError{index: i, reason: "missing id"}
		}
		if s.Qty <= 0 {
			return nil, &corruptLineError{index: i, reason: "non-positive quantity"}
		}
		if s.Price < 0 {
			return nil, &corruptLineError{index: i, reason: "negative price"}
		}
		lines = append(lines, Line{ProductID: id, Name: s.Name, Price: s.Price, Quantity: s.Qty})
	}
	return lines, nil
}

// decodeID accepts string and numeric ids; browser carts stored numbers.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d.String()
		}
	}
	return ""
}

type corruptLineError struct {
	index  int
	reason string
}

func (e *corruptLineError) Error() string {
	return fmt.Sprintf("stored cart line %d: %s", e.index, e.reason)
}
