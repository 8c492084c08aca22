package enums

import "testing"

func TestParseSortOrderNormalizes(t *testing.T) {
	got, err := ParseSortOrder("  PRECIO-ASC ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SortPriceAsc {
		t.Fatalf("expected %q got %q", SortPriceAsc, got)
	}
	if got, err := ParseSortOrder(""); err != nil || got != SortCatalog {
		t.Fatalf("empty sort should map to catalog order, got %q err=%v", got, err)
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Fatal("expected error for unknown sort order")
	}
}

func TestParseCartStateAndEventKind(t *testing.T) {
	if s, err := ParseCartState("non_empty"); err != nil || s != CartStateNonEmpty {
		t.Fatalf("unexpected cart state %q err=%v", s, err)
	}
	if _, err := ParseCartState("full"); err == nil {
		t.Fatal("expected error for unknown cart state")
	}
	for _, kind := range []CartEventKind{CartEventAdded, CartEventUpdated, CartEventRemoved, CartEventCleared, CartEventOrdered} {
		if !kind.IsValid() {
			t.Fatalf("expected %q to be valid", kind)
		}
	}
}

func TestParseMessageKind(t *testing.T) {
	if k, err := ParseMessageKind("pedido"); err != nil || k != MessageKindOrder {
		t.Fatalf("unexpected kind %q err=%v", k, err)
	}
	if MessageKind("newsletter").IsValid() {
		t.Fatal("unexpected valid kind")
	}
}
