package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/yarotec/storefront/internal/cart"
	"github.com/yarotec/storefront/pkg/enums"
)

// NoItemsText stands in for the item list of an empty order.
const NoItemsText = "No hay productos."

// Template selects which email layout a transport renders.
type Template string

const (
	TemplateOwner Template = "owner"
	TemplateReply Template = "reply"
)

// Message is one submission to relay: the owner copy is always sent, the
// customer auto-reply only when ClientEmail is set.
type Message struct {
	Kind          enums.MessageKind
	ClientName    string
	ClientEmail   string
	Phone         string
	City          string
	Address       string
	Locality      string
	Service       string
	Description   string
	Body          string
	PaymentMethod string
	Items         string
	Total         string
	Note          string
	SentAt        time.Time
}

// Email is a rendered envelope handed to a Transport.
type Email struct {
	Template Template
	To       string
	Subject  string
	// Params are the template variables, in the order Keys lists them.
	Params map[string]string
	Keys   []string
}

func (e Email) add(key, value string) Email {
	e.Params[key] = value
	e.Keys = append(e.Keys, key)
	return e
}

// Text renders params as "key: value" lines for plain-text transports.
func (e Email) Text() string {
	var b strings.Builder
	for _, k := range e.Keys {
		v := e.Params[k]
		if v == "" {
			continue
		}
		if strings.Contains(v, "\n") {
			fmt.Fprintf(&b, "%s:\n%s\n", k, v)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}
	return b.String()
}

var colombia = time.FixedZone("COT", -5*60*60)

func stamp(t time.Time) (date, clock string) {
	local := t.In(colombia)
	return local.Format("2/1/2006"), local.Format("3:04:05 p. m.")
}

func ownerEmail(owner string, m Message) Email {
	date, clock := stamp(m.SentAt)
	description := m.Description
	if description == "" {
		description = m.Body
	}
	e := Email{
		Template: TemplateOwner,
		To:       owner,
		Subject:  fmt.Sprintf("Nuevo %s de %s", m.Kind, m.ClientName),
		Params:   map[string]string{},
	}
	return e.add("to_email", owner).
		add("client_name", m.ClientName).
		add("client_email", m.ClientEmail).
		add("phone", m.Phone).
		add("ciudad", m.City).
		add("direccion", m.Address).
		add("localidad", m.Locality).
		add("servicio", m.Service).
		add("descripcion", description).
		add("mensaje", m.Body).
		add("metodo_pago", m.PaymentMethod).
		add("items", m.Items).
		add("total", m.Total).
		add("nota", m.Note).
		add("tipo", m.Kind.String()).
		add("fecha", date).
		add("hora", clock)
}

func replyEmail(m Message) Email {
	date, clock := stamp(m.SentAt)
	e := Email{
		Template: TemplateReply,
		To:       m.ClientEmail,
		Subject:  fmt.Sprintf("Recibimos tu %s", m.Kind),
		Params:   map[string]string{},
	}
	return e.add("to_email", m.ClientEmail).
		add("client_name", m.ClientName).
		add("tipo", m.Kind.String()).
		add("mensaje", fmt.Sprintf("Gracias por tu %s en Yarotec. Hemos recibido tu solicitud y te contactaremos pronto.", m.Kind)).
		add("fecha", date).
		add("hora", clock)
}

// FormatItems renders cart lines one per row with formatted money.
func FormatItems(lines []cart.Line, format func(int64) string) string {
	if len(lines) == 0 {
		return NoItemsText
	}
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, fmt.Sprintf("• %s - %s x %d = %s", l.Name, format(l.Price), l.Quantity, format(l.Subtotal())))
	}
	return strings.Join(rows, "\n")
}
