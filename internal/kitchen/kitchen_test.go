package kitchen

import (
	"testing"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
)

type recordingSink struct {
	requests []string
}

func (s *recordingSink) Request(ingredient string, quantity, threshold int) error {
	s.requests = append(s.requests, ingredient)
	return nil
}

func testKitchen(sink RequestSink) *Kitchen {
	return New(sink, logger.New("kitchen-test"))
}

func TestReserveDecrementsLedger(t *testing.T) {
	k := testKitchen(nil)
	k.AddIngredient("cheese", 50, 20)
	k.AddIngredient("bun", 30, 10)

	burger := domain.NewFood("Cheese Melt", 5.00, "Main", []string{"cheese", "cheese", "bun"})
	if !k.Reserve(burger) {
		t.Fatal("reserve should succeed with full stock")
	}
	if got := k.Quantity("cheese"); got != 48 {
		t.Fatalf("cheese = %d, want 48", got)
	}
	if got := k.Quantity("bun"); got != 29 {
		t.Fatalf("bun = %d, want 29", got)
	}
}

func TestReserveIsAllOrNothing(t *testing.T) {
	k := testKitchen(nil)
	k.AddIngredient("cheese", 50, 20)
	k.AddIngredient("bun", 0, 10)

	burger := domain.NewFood("Cheese Melt", 5.00, "Main", []string{"cheese", "bun"})
	if k.Reserve(burger) {
		t.Fatal("reserve should fail when any ingredient is short")
	}
	if got := k.Quantity("cheese"); got != 50 {
		t.Fatalf("failed reserve mutated cheese: %d", got)
	}
}

func TestReserveUnknownIngredientFails(t *testing.T) {
	k := testKitchen(nil)
	k.AddIngredient("bun", 30, 10)

	dish := domain.NewFood("Truffle Toast", 12.00, "Appetizer", []string{"bun", "truffle"})
	if k.Reserve(dish) {
		t.Fatal("reserve should fail for an unknown ingredient")
	}
	if got := k.Quantity("bun"); got != 30 {
		t.Fatalf("failed reserve mutated bun: %d", got)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	k := testKitchen(nil)
	k.AddIngredient("fries", 40, 20)
	k.AddIngredient("cheese", 50, 20)
	k.AddIngredient("gravy", 35, 25)

	poutine := domain.NewFood("Poutine", 4.00, "Appetizer", []string{"fries", "cheese", "gravy"})
	if !k.Reserve(poutine) {
		t.Fatal("reserve failed")
	}
	k.Release(poutine.Ingredients)

	for _, tc := range []struct {
		name string
		want int
	}{{"fries", 40}, {"cheese", 50}, {"gravy", 35}} {
		if got := k.Quantity(tc.name); got != tc.want {
			t.Fatalf("%s = %d after round trip, want %d", tc.name, got, tc.want)
		}
	}
}

// Scenario from the billing of a busy night: a 30-cheese dish drains the
// ledger to the threshold, a second reservation fails without mutation,
// and exactly one restock request is raised.
func TestThresholdScenario(t *testing.T) {
	sink := &recordingSink{}
	k := testKitchen(sink)
	k.AddIngredient("cheese", 50, 20)

	big := domain.NewFood("Fondue", 30.00, "Main", make([]string, 30))
	for i := range big.Ingredients {
		big.Ingredients[i] = "cheese"
	}
	if !k.Reserve(big) {
		t.Fatal("first reservation should succeed")
	}
	if got := k.Quantity("cheese"); got != 20 {
		t.Fatalf("cheese = %d, want 20", got)
	}

	second := domain.NewFood("Fondue XL", 40.00, "Main", make([]string, 25))
	for i := range second.Ingredients {
		second.Ingredients[i] = "cheese"
	}
	if k.Reserve(second) {
		t.Fatal("second reservation should fail")
	}
	if got := k.Quantity("cheese"); got != 20 {
		t.Fatalf("failed reservation changed cheese to %d", got)
	}

	// 20 is not below threshold 20, so no request yet
	if len(sink.requests) != 0 {
		t.Fatalf("unexpected requests: %v", sink.requests)
	}

	small := domain.NewFood("Cheese Cube", 1.00, "Appetizer", []string{"cheese"})
	if !k.Reserve(small) {
		t.Fatal("small reservation should succeed")
	}
	if len(sink.requests) != 1 || sink.requests[0] != "cheese" {
		t.Fatalf("want exactly one cheese request, got %v", sink.requests)
	}

	// repeated dips must not duplicate the unresolved request
	if !k.Reserve(small) {
		t.Fatal("reservation should succeed")
	}
	if len(sink.requests) != 1 {
		t.Fatalf("duplicate request for unresolved ingredient: %v", sink.requests)
	}
}

func TestRestockResolvesRequest(t *testing.T) {
	sink := &recordingSink{}
	k := testKitchen(sink)
	k.AddIngredient("tomato", 2, 15)

	dish := domain.NewFood("Bruschetta", 5.00, "Appetizer", []string{"tomato"})
	if !k.Reserve(dish) {
		t.Fatal("reserve failed")
	}
	if !k.RequestPending("tomato") {
		t.Fatal("request should be pending")
	}

	from, to := k.Restock("tomato", 20)
	if from != 1 || to != 21 {
		t.Fatalf("restock went %d -> %d, want 1 -> 21", from, to)
	}
	if k.RequestPending("tomato") {
		t.Fatal("restock should resolve the pending request")
	}

	// drain below threshold again: a fresh request is allowed
	for i := 0; i < 10; i++ {
		k.Reserve(dish)
	}
	if len(sink.requests) != 2 {
		t.Fatalf("want a second request after restock, got %v", sink.requests)
	}
}

func TestRestockUnknownIngredient(t *testing.T) {
	k := testKitchen(nil)
	from, to := k.Restock("saffron", DefaultRestock)
	if from != 0 || to != DefaultRestock {
		t.Fatalf("restock went %d -> %d", from, to)
	}
	if k.Threshold("saffron") != DefaultRestock {
		t.Fatalf("new ingredient threshold = %d", k.Threshold("saffron"))
	}
}

func TestSetThreshold(t *testing.T) {
	k := testKitchen(nil)
	k.AddIngredient("flour", 100, 50)

	old, ok := k.SetThreshold("flour", 60)
	if !ok || old != 50 {
		t.Fatalf("SetThreshold = (%d, %v)", old, ok)
	}
	if k.Quantity("flour") != 100 {
		t.Fatal("threshold change touched quantity")
	}
	if _, ok := k.SetThreshold("unknown", 5); ok {
		t.Fatal("SetThreshold succeeded for unknown ingredient")
	}
}

func TestOrderIDsStrictlyIncrease(t *testing.T) {
	k := testKitchen(nil)
	a := k.NextOrderID()
	b := k.NextOrderID()

	order := domain.NewOrder(b, nil, 1, "Bill 1")
	k.Enqueue(order)
	k.RemoveOrder(order)

	c := k.NextOrderID()
	if !(a < b && b < c) {
		t.Fatalf("ids not strictly increasing: %d %d %d", a, b, c)
	}
}

func TestEarlierUnseen(t *testing.T) {
	k := testKitchen(nil)
	first := domain.NewOrder(k.NextOrderID(), nil, 1, "Bill 1")
	second := domain.NewOrder(k.NextOrderID(), nil, 2, "Bill 1")
	k.Enqueue(first)
	k.Enqueue(second)

	if got := k.EarlierUnseen("cook-1", second.ID); got != first {
		t.Fatalf("EarlierUnseen = %v, want order %d", got, first.ID)
	}
	first.MarkSeen("cook-1")
	if got := k.EarlierUnseen("cook-1", second.ID); got != nil {
		t.Fatalf("EarlierUnseen = %v after seeing earlier order", got)
	}
}
