package domain

import "testing"

func TestFoodEqualIgnoresIngredientOrder(t *testing.T) {
	a := NewFood("Classic Burger", 6.00, "Main", []string{"beef patty", "lettuce", "tomato", "cheese", "bun"})
	b := NewFood("Classic Burger", 6.00, "Main", []string{"bun", "cheese", "tomato", "lettuce", "beef patty"})

	if !a.Equal(b) {
		t.Fatal("expected foods with same ingredient multiset to be equal")
	}
	// comparison must not reorder either operand
	if a.Ingredients[0] != "beef patty" || b.Ingredients[0] != "bun" {
		t.Fatal("Equal mutated an operand's ingredient list")
	}
}

func TestFoodEqualMultiset(t *testing.T) {
	single := NewFood("Monster Burger", 10.00, "Main", []string{"beef patty", "cheese", "bun"})
	double := NewFood("Monster Burger", 10.00, "Main", []string{"beef patty", "beef patty", "cheese", "bun"})

	if single.Equal(double) {
		t.Fatal("different ingredient counts must not compare equal")
	}
	if !double.Equal(double.Clone()) {
		t.Fatal("clone must compare equal to its source")
	}
}

func TestFoodEqualDifferentName(t *testing.T) {
	a := NewFood("Poutine", 4.00, "Appetizer", []string{"fries", "cheese", "gravy"})
	b := NewFood("Fries", 4.00, "Appetizer", []string{"fries", "cheese", "gravy"})
	if a.Equal(b) {
		t.Fatal("different names must not compare equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	def := NewFood("Poutine", 4.00, "Appetizer", []string{"fries", "cheese", "gravy", "ground beef"})
	item := def.Clone()
	item.AddIngredient("cheese")
	item.Ready = true

	if len(def.Ingredients) != 4 {
		t.Fatalf("catalog definition gained an ingredient: %v", def.Ingredients)
	}
	if def.Ready {
		t.Fatal("catalog definition marked ready")
	}
}

func TestRemoveIngredient(t *testing.T) {
	f := NewFood("Green Tea Ice Cream", 3.00, "Dessert", []string{"gt scoop", "gt scoop"})
	if !f.RemoveIngredient("gt scoop") {
		t.Fatal("expected removal to succeed")
	}
	if len(f.Ingredients) != 1 {
		t.Fatalf("expected one occurrence left, got %v", f.Ingredients)
	}
	if f.RemoveIngredient("sprinkles") {
		t.Fatal("removing an absent ingredient must fail")
	}
}

func TestRequiredQuantities(t *testing.T) {
	f := NewFood("Monster Burger", 10.00, "Main",
		[]string{"beef patty", "beef patty", "lettuce", "tomato", "cheese", "cheese", "bun"})
	req := f.RequiredQuantities()
	if req["beef patty"] != 2 || req["cheese"] != 2 || req["bun"] != 1 {
		t.Fatalf("unexpected requirements: %v", req)
	}
}

func TestOrderFilledIffAllReady(t *testing.T) {
	items := []*Food{
		NewFood("Poutine", 4.00, "Appetizer", []string{"fries"}),
		NewFood("Classic Burger", 6.00, "Main", []string{"bun"}),
	}
	order := NewOrder(1, items, 2, "Bill 1")

	if order.RecomputeFilled() {
		t.Fatal("order with unready items reported filled")
	}
	items[0].Ready = true
	if order.RecomputeFilled() {
		t.Fatal("order with one unready item reported filled")
	}
	items[1].Ready = true
	if !order.RecomputeFilled() {
		t.Fatal("order with all items ready reported unfilled")
	}
}

func TestOrderDeleteItem(t *testing.T) {
	burger := NewFood("Classic Burger", 6.00, "Main", []string{"bun", "cheese"})
	order := NewOrder(7, []*Food{burger.Clone(), burger.Clone()}, 1, "Bill 2")

	if !order.DeleteItem(burger) {
		t.Fatal("expected delete to succeed")
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected one item left, got %d", len(order.Items))
	}
}

func TestOrderItemUnready(t *testing.T) {
	burger := NewFood("Classic Burger", 6.00, "Main", []string{"bun"})
	order := NewOrder(3, []*Food{burger}, 1, "Bill 1")

	if !order.ItemUnready(burger) {
		t.Fatal("unprepared item should read unready")
	}
	burger.Ready = true
	if order.ItemUnready(burger) {
		t.Fatal("prepared item should not read unready")
	}
	missing := NewFood("Poutine", 4.00, "Appetizer", []string{"fries"})
	if order.ItemUnready(missing) {
		t.Fatal("absent item should not read unready")
	}
}
