package enums

import "fmt"

// MessageKind is the type of submission relayed by email. The values are the
// labels shown to the store owner and the customer.
type MessageKind string

const (
	MessageKindOrder          MessageKind = "pedido"
	MessageKindContact        MessageKind = "mensaje de contacto"
	MessageKindServiceRequest MessageKind = "solicitud de servicio"
)

var validMessageKinds = []MessageKind{
	MessageKindOrder,
	MessageKindContact,
	MessageKindServiceRequest,
}

// String implements fmt.Stringer.
func (m MessageKind) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MessageKind.
func (m MessageKind) IsValid() bool {
	for _, candidate := range validMessageKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMessageKind converts raw input into a MessageKind.
func ParseMessageKind(value string) (MessageKind, error) {
	for _, candidate := range validMessageKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message kind %q", value)
}
