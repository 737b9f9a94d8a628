package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/restaurant"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurant.json")
	store := NewFileStore(path)
	ctx := context.Background()

	state := &restaurant.State{
		Ingredients: map[string]domain.IngredientRecord{
			"cheese": {Quantity: 42, Threshold: 20},
		},
		Pending:  map[string]bool{"cheese": true},
		Sequence: 7,
		Revenue:  19.99,
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil state")
	}
	if got.Ingredients["cheese"].Quantity != 42 {
		t.Errorf("cheese quantity = %d, want 42", got.Ingredients["cheese"].Quantity)
	}
	if !got.Pending["cheese"] {
		t.Error("pending request lost")
	}
	if got.Sequence != 7 {
		t.Errorf("sequence = %d, want 7", got.Sequence)
	}
	if got.Revenue != 19.99 {
		t.Errorf("revenue = %v, want 19.99", got.Revenue)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Error("want nil state for missing snapshot")
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurant.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, &restaurant.State{Sequence: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, &restaurant.State{Sequence: 2}); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Sequence != 2 {
		t.Errorf("sequence = %d, want 2", got.Sequence)
	}
}
