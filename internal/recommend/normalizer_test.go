package recommend

import (
	"reflect"
	"testing"

	"smartcart/internal/catalog"
)

func TestNormalizeCart(t *testing.T) {
	cat := catalog.Build([][]string{
		{"Classic Wings", "Seasoned Fries", "Ranch Dip"},
	}, catalog.DefaultRules())

	got := NormalizeCart([]string{"classic wings", "SEASONED FRIES"}, cat)
	want := []string{"Classic Wings", "Seasoned Fries"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNormalizeCartDropsUnknown(t *testing.T) {
	cat := catalog.Build([][]string{{"Classic Wings"}}, catalog.DefaultRules())

	got := NormalizeCart([]string{"Nonexistent Item", "classic wings"}, cat)
	want := []string{"Classic Wings"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := NormalizeCart([]string{"Nonexistent Item"}, cat); got != nil {
		t.Fatalf("all-unknown cart should normalize to empty, got %v", got)
	}
}

func TestNormalizeCartDeduplicates(t *testing.T) {
	cat := catalog.Build([][]string{{"Classic Wings"}}, catalog.DefaultRules())

	got := NormalizeCart([]string{"Classic Wings", "classic wings"}, cat)
	if len(got) != 1 {
		t.Fatalf("expected deduplicated cart, got %v", got)
	}
}
