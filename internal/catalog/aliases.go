package catalog

// Field names a canonical product attribute.
type Field string

const (
	FieldID             Field = "id"
	FieldCategory       Field = "category"
	FieldName           Field = "name"
	FieldPrice          Field = "price"
	FieldStock          Field = "stock"
	FieldDescription    Field = "description"
	FieldPrimaryImage   Field = "primary_image"
	FieldSecondaryImage Field = "secondary_image"
	FieldTertiaryImage  Field = "tertiary_image"
	FieldPromotion      Field = "promotion"
)

// Aliases lists, per field, the raw key spellings seen in catalog exports.
// Lookup is ordered and the first non-empty match wins, so new spellings are
// appended here without touching the normalizer.
type Aliases map[Field][]string

// DefaultAliases covers the spreadsheet exports the storefront has received.
var DefaultAliases = Aliases{
	FieldID:             {"id", "ID", "Id", "codigo", "CODIGO"},
	FieldCategory:       {"categoria", "CATEGORIA", "Categoria", "category"},
	FieldName:           {"concatenado", "CONCATENADO", "nombre", "NOMBRE", "name"},
	FieldPrice:          {"precio", "PRECIO", "Precio", "price"},
	FieldStock:          {"stock", "STOCK", "Stock"},
	FieldDescription:    {"descripcion", "DESCRIPCION", "Descripcion", "description"},
	FieldPrimaryImage:   {"IMAGEN  principal", "imagen_principal", "IMAGEN principal", "image"},
	FieldSecondaryImage: {"2 imagen", "imagen_2"},
	FieldTertiaryImage:  {"3 imagen", "imagen_3"},
	FieldPromotion:      {"PROMOCION", "promocion", "Promocion", "promoción", "PROMOCIÓN"},
}

// With returns a copy of the table with extra spellings appended to a field.
func (a Aliases) With(field Field, keys ...string) Aliases {
	out := make(Aliases, len(a))
	for f, list := range a {
		out[f] = append([]string(nil), list...)
	}
	out[field] = append(out[field], keys...)
	return out
}
