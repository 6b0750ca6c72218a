package artifact

import (
	"context"
	"reflect"
	"testing"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"
	"smartcart/internal/recommend"
)

func buildModel(t *testing.T) *recommend.Model {
	t.Helper()

	svc := recommend.NewService(
		catalog.DefaultRules(), recommend.DefaultEngineConfig(), nil, nil,
	)
	model, err := svc.Build(context.Background(), [][]string{
		{"Classic Wings", "Seasoned Fries", "Ranch Dip"},
		{"Classic Wings", "Sweet Tea"},
		{"Seasoned Fries", "Ranch Dip"},
		{"Classic Wings", "Seasoned Fries"},
	}, comatrix.BuildOptions{Shards: 1})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return model
}

func TestBundleRoundTripScoring(t *testing.T) {
	model := buildModel(t)

	data, err := FromModel(model).Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	bundle, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	restored, err := bundle.ToModel()
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if restored.SnapshotID != model.SnapshotID {
		t.Errorf("snapshot ID changed: %q vs %q", restored.SnapshotID, model.SnapshotID)
	}

	// The loaded model must score identically to the original.
	carts := [][]string{
		{"Classic Wings"},
		{"Seasoned Fries"},
		{"Classic Wings", "Ranch Dip"},
	}
	for _, cart := range carts {
		a := recommend.Recommend(model, cart)
		b := recommend.Recommend(restored, cart)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("cart %v: scoring diverged after round trip:\n%v\n%v", cart, a, b)
		}
	}
}

func TestBundleEncodeDeterministic(t *testing.T) {
	model := buildModel(t)

	a, err := FromModel(model).Encode()
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromModel(model).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatal("bundle encoding is not deterministic")
	}
}

func TestDecodeCorruptBundle(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error for corrupt data")
	}

	// Structurally valid JSON but wrong version.
	bundle, err := Decode([]byte(`{"version": 99, "snapshot_id": "x"}`))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if _, err := bundle.ToModel(); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
