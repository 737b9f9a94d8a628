package tables

import (
	"fmt"
	"sort"
	"strings"

	"restaurant-ops/internal/domain"
)

// Billing constants. The 13% tax applies to every confirmed line total;
// the 15% service charge is layered on top when the table is cleared.
// Parties of eight or more get a gratuity annotation on the receipt, the
// annotation never changes the amount.
const (
	TaxRate           = 1.13
	ServiceRate       = 1.15
	GratuityPartySize = 8
)

// Table tracks one physical table: occupancy, the per-bill pending item
// lists still being composed, and the per-bill history of placed orders.
type Table struct {
	Number       int
	Occupied     bool
	NumCustomers int

	pending map[domain.BillID][]*domain.Food
	history map[domain.BillID][]*domain.Order
}

func New(number int) *Table {
	return &Table{
		Number:  number,
		pending: make(map[domain.BillID][]*domain.Food),
		history: make(map[domain.BillID][]*domain.Order),
	}
}

// Seat occupies the table with numCustomers guests split over numBills
// paying customers, creating a bill group per payer.
func (t *Table) Seat(numBills, numCustomers int) {
	for i := 1; i <= numBills; i++ {
		bill := domain.BillID(fmt.Sprintf("Bill %d", i))
		t.pending[bill] = []*domain.Food{}
		t.history[bill] = []*domain.Order{}
	}
	t.NumCustomers = numCustomers
	t.Occupied = true
}

func (t *Table) HasBill(bill domain.BillID) bool {
	_, ok := t.pending[bill]
	return ok
}

// Bills lists the table's bill groups in a stable order.
func (t *Table) Bills() []domain.BillID {
	bills := make([]domain.BillID, 0, len(t.pending))
	for bill := range t.pending {
		bills = append(bills, bill)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i] < bills[j] })
	return bills
}

func (t *Table) AddPending(bill domain.BillID, food *domain.Food) {
	t.pending[bill] = append(t.pending[bill], food)
}

// RemovePending deletes the first pending item equal to food from the
// bill's list.
func (t *Table) RemovePending(bill domain.BillID, food *domain.Food) bool {
	items := t.pending[bill]
	for i, item := range items {
		if item.Equal(food) {
			t.pending[bill] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Table) PendingContains(bill domain.BillID, food *domain.Food) bool {
	for _, item := range t.pending[bill] {
		if item.Equal(food) {
			return true
		}
	}
	return false
}

// FindPending returns the stored pending item equal to food, so callers
// can release exactly the ingredients it carries, customizations included.
func (t *Table) FindPending(bill domain.BillID, food *domain.Food) (*domain.Food, bool) {
	for _, item := range t.pending[bill] {
		if item.Equal(food) {
			return item, true
		}
	}
	return nil, false
}

func (t *Table) Pending(bill domain.BillID) []*domain.Food { return t.pending[bill] }

// HasRequests reports whether any bill group has items not yet placed.
func (t *Table) HasRequests() bool {
	for _, items := range t.pending {
		if len(items) > 0 {
			return true
		}
	}
	return false
}

// TakePending empties a bill's pending list and returns the items, the
// placement step of the order lifecycle.
func (t *Table) TakePending(bill domain.BillID) []*domain.Food {
	items := t.pending[bill]
	t.pending[bill] = []*domain.Food{}
	return items
}

// AddOrder records a placed order into the bill's history, once.
func (t *Table) AddOrder(order *domain.Order) {
	for _, o := range t.history[order.Bill] {
		if o.ID == order.ID {
			return
		}
	}
	t.history[order.Bill] = append(t.history[order.Bill], order)
}

func (t *Table) RemoveOrder(order *domain.Order) {
	orders := t.history[order.Bill]
	for i, o := range orders {
		if o.ID == order.ID {
			t.history[order.Bill] = append(orders[:i], orders[i+1:]...)
			return
		}
	}
}

func (t *Table) Orders(bill domain.BillID) []*domain.Order { return t.history[bill] }

// Bill sums the item prices of every confirmed order on the bill and
// applies the tax multiplier.
func (t *Table) Bill(bill domain.BillID) float64 {
	var total float64
	for _, order := range t.history[bill] {
		if order.Confirmed {
			total += order.LineTotal()
		}
	}
	return total * TaxRate
}

// Clear resets occupancy, bill groups, and order history.
func (t *Table) Clear() {
	t.pending = make(map[domain.BillID][]*domain.Food)
	t.history = make(map[domain.BillID][]*domain.Order)
	t.NumCustomers = 0
	t.Occupied = false
}

// Receipts renders an itemized receipt per bill group.
func (t *Table) Receipts() string {
	var b strings.Builder
	if t.NumCustomers >= GratuityPartySize {
		b.WriteString("(Gratuity Tip been added)\n\n")
	}
	for _, bill := range t.Bills() {
		fmt.Fprintf(&b, "%s\n", bill)
		var total float64
		for _, order := range t.history[bill] {
			for _, item := range order.Items {
				fmt.Fprintf(&b, "%s ---- %.2f\n", item.Name, item.Price)
				total += item.Price
			}
		}
		fmt.Fprintf(&b, "Total: %.2f\n\n", total)
	}
	return b.String()
}

func (t *Table) String() string { return fmt.Sprintf("Table %d", t.Number) }

// State is the serializable form of a table for snapshots. Orders in the
// history are referenced by id so restore can re-link the shared Order
// values held by the kitchen queue and server tracking sets.
type State struct {
	Number       int                              `json:"number"`
	Occupied     bool                             `json:"occupied"`
	NumCustomers int                              `json:"num_customers"`
	Pending      map[domain.BillID][]*domain.Food `json:"pending"`
	History      map[domain.BillID][]int          `json:"history"`
}

func (t *Table) Snapshot() State {
	s := State{
		Number:       t.Number,
		Occupied:     t.Occupied,
		NumCustomers: t.NumCustomers,
		Pending:      make(map[domain.BillID][]*domain.Food, len(t.pending)),
		History:      make(map[domain.BillID][]int, len(t.history)),
	}
	for bill, items := range t.pending {
		s.Pending[bill] = items
	}
	for bill, orders := range t.history {
		ids := make([]int, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		s.History[bill] = ids
	}
	return s
}

// Restore rebuilds a table from its snapshot, resolving order ids
// through byID.
func Restore(s State, byID map[int]*domain.Order) *Table {
	t := New(s.Number)
	t.Occupied = s.Occupied
	t.NumCustomers = s.NumCustomers
	for bill, items := range s.Pending {
		t.pending[bill] = items
	}
	for bill, ids := range s.History {
		orders := make([]*domain.Order, 0, len(ids))
		for _, id := range ids {
			if o, ok := byID[id]; ok {
				orders = append(orders, o)
			}
		}
		t.history[bill] = orders
	}
	return t
}
