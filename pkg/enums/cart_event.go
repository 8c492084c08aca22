package enums

import "fmt"

// CartEventKind labels the mutation that produced a cart event.
type CartEventKind string

const (
	CartEventAdded   CartEventKind = "added"
	CartEventUpdated CartEventKind = "updated"
	CartEventRemoved CartEventKind = "removed"
	CartEventCleared CartEventKind = "cleared"
	CartEventOrdered CartEventKind = "ordered"
)

var validCartEventKinds = []CartEventKind{
	CartEventAdded,
	CartEventUpdated,
	CartEventRemoved,
	CartEventCleared,
	CartEventOrdered,
}

// String implements fmt.Stringer.
func (c CartEventKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartEventKind.
func (c CartEventKind) IsValid() bool {
	for _, candidate := range validCartEventKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartEventKind converts raw input into a CartEventKind.
func ParseCartEventKind(value string) (CartEventKind, error) {
	for _, candidate := range validCartEventKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart event kind %q", value)
}
