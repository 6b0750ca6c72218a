package recommend

import (
	"context"
	"testing"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"
)

func buildTestModel(t *testing.T, orders [][]string) *Model {
	t.Helper()

	svc := NewService(catalog.DefaultRules(), DefaultEngineConfig(), nil, nil)
	model, err := svc.Build(context.Background(), orders, comatrix.BuildOptions{Shards: 1})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return model
}

func TestRecommendEmptyCart(t *testing.T) {
	model := buildTestModel(t, [][]string{{"Classic Wings", "Seasoned Fries"}})

	if recs := Recommend(model, nil); recs != nil {
		t.Fatalf("empty cart must yield no recommendations, got %v", recs)
	}
}

func TestRecommendWingsScenario(t *testing.T) {
	orders := [][]string{
		{"Wings", "Fries"},
		{"Wings", "Ranch"},
		{"Wings", "Fries", "Ranch"},
		{"Brownie", "Tea"},
	}
	model := buildTestModel(t, orders)

	recs := Recommend(model, []string{"Wings"})
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}

	// Fries and Ranch co-occur with Wings; Brownie and Tea do not, so they
	// may only appear via the fallback, behind the co-occurring pair.
	firstTwo := map[string]bool{recs[0].Item: true, recs[1].Item: true}
	if !firstTwo["Fries"] || !firstTwo["Ranch"] {
		t.Fatalf("expected Fries and Ranch ahead, got %v", recs)
	}
	if recs[0].Score <= 0 || recs[1].Score <= 0 {
		t.Fatal("co-occurring items must carry positive scores")
	}

	for i, r := range recs {
		if r.Rank != i+1 {
			t.Errorf("rank %d at position %d", r.Rank, i)
		}
		if r.Item == "Wings" {
			t.Error("cart item recommended back")
		}
	}
}

func TestRecommendNeverDuplicates(t *testing.T) {
	orders := [][]string{
		{"Classic Wings", "Seasoned Fries", "Ranch Dip"},
		{"Classic Wings", "Sweet Tea"},
		{"Seasoned Fries", "Sweet Tea", "Chocolate Brownie"},
	}
	model := buildTestModel(t, orders)

	for _, cart := range [][]string{
		{"Classic Wings"},
		{"Classic Wings", "Seasoned Fries"},
		{"Classic Wings", "Seasoned Fries", "Sweet Tea"},
	} {
		recs := Recommend(model, cart)
		if len(recs) > TopN {
			t.Fatalf("more than %d recommendations for cart %v", TopN, cart)
		}
		seen := make(map[string]bool)
		inCart := make(map[string]bool)
		for _, c := range cart {
			inCart[c] = true
		}
		for i, r := range recs {
			if r.Rank != i+1 {
				t.Errorf("cart %v: rank %d at position %d", cart, r.Rank, i)
			}
			if seen[r.Item] {
				t.Errorf("cart %v: duplicate recommendation %q", cart, r.Item)
			}
			if inCart[r.Item] {
				t.Errorf("cart %v: cart item %q recommended", cart, r.Item)
			}
			seen[r.Item] = true
		}
	}
}

func TestCategoryBiasFavorsDiversity(t *testing.T) {
	// Buffalo Wings has the higher raw affinity to the cart, but Crispy
	// Fries sits in an uncovered category; with the default 0.10 bias the
	// fries must rank ahead.
	var orders [][]string
	for i := 0; i < 10; i++ {
		orders = append(orders, []string{"Atomic Wings", "Buffalo Wings"})
	}
	for i := 0; i < 9; i++ {
		orders = append(orders, []string{"Atomic Wings", "Crispy Fries"})
	}
	orders = append(orders, []string{"Atomic Wings"})
	model := buildTestModel(t, orders)

	recs := Recommend(model, []string{"Atomic Wings"})
	if len(recs) < 2 {
		t.Fatalf("expected at least 2 recommendations, got %v", recs)
	}
	if recs[0].Item != "Crispy Fries" {
		t.Fatalf("bias did not promote uncovered category: got %v", recs)
	}
	if recs[1].Item != "Buffalo Wings" {
		t.Fatalf("expected Buffalo Wings second, got %v", recs)
	}
}

func TestBlacklistFiltering(t *testing.T) {
	orders := [][]string{
		{"Classic Wings", "Plasticware"},
		{"Classic Wings", "Plasticware"},
		{"Classic Wings", "Seasoned Fries"},
	}
	model := buildTestModel(t, orders)

	recs := Recommend(model, []string{"Classic Wings"})
	for _, r := range recs {
		if r.Item == "Plasticware" {
			t.Fatal("blacklisted item recommended")
		}
	}
}

func TestFallbackVariety(t *testing.T) {
	// Solo Item never co-occurs with anything, so all three slots come
	// from per-category popularity.
	orders := [][]string{
		{"Solo Item"},
		{"Classic Wings", "Seasoned Fries"},
		{"Classic Wings", "Sweet Tea"},
		{"Ranch Dip", "Seasoned Fries"},
	}
	model := buildTestModel(t, orders)

	recs := Recommend(model, []string{"Solo Item"})
	if len(recs) != 3 {
		t.Fatalf("fallback should fill all slots, got %v", recs)
	}
	cats := make(map[string]bool)
	for _, r := range recs {
		if r.Item == "Solo Item" {
			t.Fatal("cart item recommended back")
		}
		cats[string(r.Category)] = true
	}
	if len(cats) < 3 {
		t.Errorf("fallback should cycle distinct categories, got %v", recs)
	}
}

func TestRecommendDeterministicTieBreak(t *testing.T) {
	orders := [][]string{
		{"Classic Wings", "Seasoned Fries"},
		{"Classic Wings", "Buttered Corn"},
	}
	model := buildTestModel(t, orders)

	// Both sides score identically; first-seen order decides.
	a := Recommend(model, []string{"Classic Wings"})
	b := Recommend(model, []string{"Classic Wings"})
	if a[0].Item != "Seasoned Fries" || b[0].Item != "Seasoned Fries" {
		t.Fatalf("tie-break not deterministic: %v vs %v", a, b)
	}
}
