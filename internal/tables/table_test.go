package tables

import (
	"math"
	"strings"
	"testing"

	"restaurant-ops/internal/domain"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSeatCreatesBillGroups(t *testing.T) {
	table := New(1)
	table.Seat(2, 5)

	if !table.Occupied || table.NumCustomers != 5 {
		t.Fatalf("seat state: occupied=%v customers=%d", table.Occupied, table.NumCustomers)
	}
	if !table.HasBill("Bill 1") || !table.HasBill("Bill 2") {
		t.Fatalf("bill groups missing: %v", table.Bills())
	}
	if table.HasBill("Bill 3") {
		t.Fatal("unexpected third bill group")
	}
}

func TestBillSumsOnlyConfirmedOrders(t *testing.T) {
	table := New(2)
	table.Seat(1, 2)

	confirmed := domain.NewOrder(1, []*domain.Food{
		domain.NewFood("Classic Burger", 6.00, "Main", []string{"bun"}),
		domain.NewFood("Poutine", 4.00, "Appetizer", []string{"fries"}),
	}, 2, "Bill 1")
	confirmed.Confirmed = true

	unconfirmed := domain.NewOrder(2, []*domain.Food{
		domain.NewFood("Green Tea Ice Cream", 3.00, "Dessert", []string{"gt scoop"}),
	}, 2, "Bill 1")

	table.AddOrder(confirmed)
	table.AddOrder(unconfirmed)

	want := 10.00 * TaxRate
	if got := table.Bill("Bill 1"); !almost(got, want) {
		t.Fatalf("bill = %v, want %v", got, want)
	}
}

func TestAddOrderIsIdempotent(t *testing.T) {
	table := New(1)
	table.Seat(1, 1)
	order := domain.NewOrder(9, nil, 1, "Bill 1")

	table.AddOrder(order)
	table.AddOrder(order)
	if got := len(table.Orders("Bill 1")); got != 1 {
		t.Fatalf("order recorded %d times", got)
	}
}

func TestPendingLifecycle(t *testing.T) {
	table := New(3)
	table.Seat(1, 2)
	burger := domain.NewFood("Classic Burger", 6.00, "Main", []string{"bun", "cheese"})

	table.AddPending("Bill 1", burger.Clone())
	if !table.HasRequests() {
		t.Fatal("pending item not visible")
	}
	if !table.PendingContains("Bill 1", burger) {
		t.Fatal("PendingContains missed equal item")
	}

	taken := table.TakePending("Bill 1")
	if len(taken) != 1 || table.HasRequests() {
		t.Fatalf("TakePending left state: taken=%d hasRequests=%v", len(taken), table.HasRequests())
	}
}

func TestRemovePendingUsesEquality(t *testing.T) {
	table := New(3)
	table.Seat(1, 2)
	burger := domain.NewFood("Classic Burger", 6.00, "Main", []string{"bun", "cheese"})
	table.AddPending("Bill 1", burger.Clone())

	reordered := domain.NewFood("Classic Burger", 6.00, "Main", []string{"cheese", "bun"})
	if !table.RemovePending("Bill 1", reordered) {
		t.Fatal("equal item with reordered ingredients not removed")
	}
	if table.RemovePending("Bill 1", reordered) {
		t.Fatal("second removal should fail")
	}
}

func TestClearResetsEverything(t *testing.T) {
	table := New(4)
	table.Seat(2, 9)
	table.AddPending("Bill 1", domain.NewFood("Poutine", 4.00, "Appetizer", []string{"fries"}))
	table.AddOrder(domain.NewOrder(1, nil, 4, "Bill 2"))

	table.Clear()
	if table.Occupied || table.NumCustomers != 0 {
		t.Fatal("occupancy not reset")
	}
	if table.HasRequests() || table.HasBill("Bill 1") {
		t.Fatal("bill groups not reset")
	}
}

func TestReceiptsAnnotateGratuity(t *testing.T) {
	table := New(5)
	table.Seat(1, 8)
	order := domain.NewOrder(1, []*domain.Food{
		domain.NewFood("Classic Burger", 6.00, "Main", []string{"bun"}),
	}, 5, "Bill 1")
	order.Confirmed = true
	table.AddOrder(order)

	receipt := table.Receipts()
	if !strings.Contains(receipt, "Gratuity") {
		t.Fatalf("party of 8 receipt missing gratuity note:\n%s", receipt)
	}
	if !strings.Contains(receipt, "Classic Burger ---- 6.00") {
		t.Fatalf("receipt missing line item:\n%s", receipt)
	}

	small := New(6)
	small.Seat(1, 2)
	if strings.Contains(small.Receipts(), "Gratuity") {
		t.Fatal("small party receipt has gratuity note")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	table := New(7)
	table.Seat(2, 4)
	pendingItem := domain.NewFood("Poutine", 4.00, "Appetizer", []string{"fries", "cheese"})
	table.AddPending("Bill 2", pendingItem)

	order := domain.NewOrder(11, []*domain.Food{
		domain.NewFood("Classic Burger", 6.00, "Main", []string{"bun"}),
	}, 7, "Bill 1")
	order.Confirmed = true
	table.AddOrder(order)

	state := table.Snapshot()
	restored := Restore(state, map[int]*domain.Order{11: order})

	if !restored.Occupied || restored.NumCustomers != 4 {
		t.Fatal("occupancy lost in round trip")
	}
	if !restored.PendingContains("Bill 2", pendingItem) {
		t.Fatal("pending item lost in round trip")
	}
	if got := restored.Bill("Bill 1"); !almost(got, 6.00*TaxRate) {
		t.Fatalf("restored bill = %v", got)
	}
}
