package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is one raw catalog entry as decoded from JSON.
type Record map[string]any

// productNamespace seeds the deterministic ids of records that carry none.
var productNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://yarotec.co/catalog/products"))

// ErrInvalidDocument is returned when a catalog payload holds no product collection.
var ErrInvalidDocument = errors.New("catalog document has no product collection")

// Normalizer maps raw records onto Product using an alias table.
type Normalizer struct {
	aliases Aliases
}

func NewNormalizer(aliases Aliases) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Normalizer{aliases: aliases}
}

var defaultNormalizer = NewNormalizer(DefaultAliases)

// Normalize converts raw records with the default alias table.
func Normalize(records []Record) []Product {
	return defaultNormalizer.Normalize(records)
}

// NormalizeJSON decodes a catalog document and normalizes its records.
func NormalizeJSON(payload []byte) ([]Product, error) {
	records, err := DecodeDocument(payload)
	if err != nil {
		return nil, err
	}
	return Normalize(records), nil
}

// Normalize never fails on individual fields; bad values fall back to defaults.
func (n *Normalizer) Normalize(records []Record) []Product {
	products := make([]Product, 0, len(records))
	for _, rec := range records {
		products = append(products, n.normalizeOne(rec))
	}
	return products
}

func (n *Normalizer) normalizeOne(rec Record) Product {
	p := Product{
		Category:       n.text(rec, FieldCategory),
		Name:           n.text(rec, FieldName),
		Price:          clampInt64(n.number(rec, FieldPrice)),
		Stock:          int(clampInt64(n.number(rec, FieldStock))),
		Description:    n.text(rec, FieldDescription),
		PrimaryImage:   n.text(rec, FieldPrimaryImage),
		SecondaryImage: n.text(rec, FieldSecondaryImage),
		TertiaryImage:  n.text(rec, FieldTertiaryImage),
		OnPromotion:    n.promotion(rec),
	}
	if p.Name == "" {
		p.Name = UnnamedProduct
	}
	if p.PrimaryImage == "" {
		p.PrimaryImage = PlaceholderImage
	}
	p.ID = n.id(rec, p)
	return p
}

func (n *Normalizer) lookup(rec Record, field Field) (any, bool) {
	for _, key := range n.aliases[field] {
		val, ok := rec[key]
		if !ok || val == nil {
			continue
		}
		if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return val, true
	}
	return nil, false
}

func (n *Normalizer) text(rec Record, field Field) string {
	val, ok := n.lookup(rec, field)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (n *Normalizer) number(rec Record, field Field) decimal.Decimal {
	val, ok := n.lookup(rec, field)
	if !ok {
		return decimal.Zero
	}
	d, ok := toDecimal(val)
	if !ok {
		return decimal.Zero
	}
	return d
}

func (n *Normalizer) promotion(rec Record) bool {
	val, ok := n.lookup(rec, FieldPromotion)
	if !ok {
		return false
	}
	if b, isBool := val.(bool); isBool {
		return b
	}
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(val))) == "si"
}

// id keeps a source id in canonical text form; records without one get a
// deterministic id derived from their content so carts survive reloads.
func (n *Normalizer) id(rec Record, p Product) string {
	if val, ok := n.lookup(rec, FieldID); ok {
		if d, isNumber := numericID(val); isNumber {
			return d
		}
		if s := n.text(rec, FieldID); s != "" {
			return s
		}
	}
	seed := strings.Join([]string{
		p.CategoryKey(),
		p.Name,
		strconv.FormatInt(p.Price, 10),
		p.Description,
	}, "|")
	return uuid.NewSHA1(productNamespace, []byte(seed)).String()
}

func numericID(val any) (string, bool) {
	switch v := val.(type) {
	case json.Number, float64, int, int64:
		d, ok := toDecimal(v)
		if !ok {
			return "", false
		}
		return d.String(), true
	}
	return "", false
}

func toDecimal(val any) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// MaxAmount bounds prices and stock. Larger values are treated as
// non-numeric so line subtotals cannot overflow int64.
const MaxAmount int64 = 1_000_000_000_000

var maxAmount = decimal.NewFromInt(MaxAmount)

func clampInt64(d decimal.Decimal) int64 {
	d = d.Round(0)
	if d.IsNegative() || d.GreaterThan(maxAmount) {
		return 0
	}
	return d.IntPart()
}

// DecodeDocument accepts either a bare array of records or an object holding
// the array under "productos" or "products". Entries that are not objects are
// skipped.
func DecodeDocument(payload []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrInvalidDocument
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, key := range []string{"productos", "products"} {
			if list, ok := v[key].([]any); ok {
				items = list
				break
			}
		}
		if items == nil {
			return nil, ErrInvalidDocument
		}
	default:
		return nil, ErrInvalidDocument
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, Record(obj))
		}
	}
	return records, nil
}
