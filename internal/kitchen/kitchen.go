package kitchen

import (
	"fmt"
	"sort"
	"strings"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
)

// DefaultRestock is the quantity and threshold given to an ingredient
// stocked for the first time without an explicit amount.
const DefaultRestock = 20

// RequestSink receives restock requests raised when an ingredient dips
// below its threshold. Implementations must be fire-and-forget against
// the caller: a sink error never fails a reservation.
type RequestSink interface {
	Request(ingredient string, quantity, threshold int) error
}

// Kitchen owns the ingredient ledger and the queue of active orders.
// All staff operations mutate shared state through it; callers serialize
// access (single logical writer).
type Kitchen struct {
	ingredients map[string]*domain.IngredientRecord
	orders      []*domain.Order
	pending     map[string]bool // unresolved restock requests
	seq         int
	requests    RequestSink
	log         *logger.Logger
}

func New(requests RequestSink, log *logger.Logger) *Kitchen {
	return &Kitchen{
		ingredients: make(map[string]*domain.IngredientRecord),
		pending:     make(map[string]bool),
		requests:    requests,
		log:         log,
	}
}

// AddIngredient seeds a ledger row. Existing rows are left untouched.
func (k *Kitchen) AddIngredient(name string, quantity, threshold int) {
	if _, ok := k.ingredients[name]; ok {
		return
	}
	k.ingredients[name] = &domain.IngredientRecord{Quantity: quantity, Threshold: threshold}
}

func (k *Kitchen) HasIngredient(name string) bool {
	_, ok := k.ingredients[name]
	return ok
}

func (k *Kitchen) Quantity(name string) int {
	if rec, ok := k.ingredients[name]; ok {
		return rec.Quantity
	}
	return 0
}

func (k *Kitchen) Threshold(name string) int {
	if rec, ok := k.ingredients[name]; ok {
		return rec.Threshold
	}
	return 0
}

// Reserve checks that every ingredient the dish needs is stocked in
// sufficient quantity, then decrements the ledger. All-or-nothing: a
// failing check mutates nothing. Each decremented ingredient that ends
// below its threshold raises a restock request, at most once while the
// previous request is unresolved.
func (k *Kitchen) Reserve(food *domain.Food) bool {
	required := food.RequiredQuantities()
	for name, need := range required {
		rec, ok := k.ingredients[name]
		if !ok || rec.Quantity < need {
			k.log.Warn("reserve_rejected", fmt.Sprintf("not enough %s for %s", name, food.Name),
				map[string]any{"ingredient": name, "food": food.Name, "need": need, "have": k.Quantity(name)})
			return false
		}
	}
	for name, need := range required {
		rec := k.ingredients[name]
		rec.Quantity -= need
		k.maybeRequestRestock(name, rec)
	}
	return true
}

// Release returns one unit per ingredient occurrence to the ledger, the
// exact reservation of a single cancelled or deleted item.
func (k *Kitchen) Release(ingredients []string) {
	for _, name := range ingredients {
		if rec, ok := k.ingredients[name]; ok {
			rec.Quantity++
		}
	}
}

// Restock adds delta to an ingredient's quantity. An unknown ingredient
// is created with quantity and threshold both set to delta. Returns the
// previous and new quantity.
func (k *Kitchen) Restock(name string, delta int) (from, to int) {
	rec, ok := k.ingredients[name]
	if !ok {
		k.ingredients[name] = &domain.IngredientRecord{Quantity: delta, Threshold: delta}
		delete(k.pending, name)
		return 0, delta
	}
	from = rec.Quantity
	rec.Quantity += delta
	// the outstanding request is considered answered; a later dip below
	// threshold may raise a new one
	delete(k.pending, name)
	return from, rec.Quantity
}

// SetThreshold replaces an ingredient's threshold, preserving quantity.
func (k *Kitchen) SetThreshold(name string, threshold int) (old int, ok bool) {
	rec, found := k.ingredients[name]
	if !found {
		return 0, false
	}
	old = rec.Threshold
	rec.Threshold = threshold
	return old, true
}

func (k *Kitchen) maybeRequestRestock(name string, rec *domain.IngredientRecord) {
	if rec.Quantity >= rec.Threshold || k.pending[name] {
		return
	}
	k.pending[name] = true
	k.log.Info("restock_needed",
		fmt.Sprintf("%s currently has %d, below threshold of %d", name, rec.Quantity, rec.Threshold),
		map[string]any{"ingredient": name, "quantity": rec.Quantity, "threshold": rec.Threshold})
	if k.requests != nil {
		if err := k.requests.Request(name, rec.Quantity, rec.Threshold); err != nil {
			k.log.Error("restock_request_failed", err, map[string]any{"ingredient": name})
		}
	}
}

// RequestPending reports whether an unresolved restock request exists.
func (k *Kitchen) RequestPending(name string) bool { return k.pending[name] }

// NextOrderID hands out restaurant-wide order ids, strictly increasing,
// never reused.
func (k *Kitchen) NextOrderID() int {
	k.seq++
	return k.seq
}

func (k *Kitchen) Enqueue(order *domain.Order) { k.orders = append(k.orders, order) }

func (k *Kitchen) RemoveOrder(order *domain.Order) {
	for i, o := range k.orders {
		if o.ID == order.ID {
			k.orders = append(k.orders[:i], k.orders[i+1:]...)
			return
		}
	}
}

func (k *Kitchen) Order(id int) (*domain.Order, bool) {
	for _, o := range k.orders {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Orders returns the active queue, FIFO by id.
func (k *Kitchen) Orders() []*domain.Order { return k.orders }

// EarlierUnseen returns the first queued order with a lower id that the
// cook has not yet seen. Nil means the cook is caught up to orderID.
func (k *Kitchen) EarlierUnseen(cookID string, orderID int) *domain.Order {
	for _, o := range k.orders {
		if o.ID >= orderID {
			break
		}
		if !o.HasSeen(cookID) {
			return o
		}
	}
	return nil
}

// Inventory returns a copy of the ledger for reporting and snapshots.
func (k *Kitchen) Inventory() map[string]domain.IngredientRecord {
	out := make(map[string]domain.IngredientRecord, len(k.ingredients))
	for name, rec := range k.ingredients {
		out[name] = *rec
	}
	return out
}

// RenderInventory produces the printable ledger listing, sorted by name.
func (k *Kitchen) RenderInventory() string {
	names := make([]string, 0, len(k.ingredients))
	for name := range k.ingredients {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("---------------- Kitchen Inventory ----------------\n")
	for _, name := range names {
		rec := k.ingredients[name]
		fmt.Fprintf(&b, "%s: quantity = %d, threshold = %d\n", name, rec.Quantity, rec.Threshold)
	}
	b.WriteString("---------------------------------------------------")
	return b.String()
}

// RestoreLedger replaces the ledger wholesale from a snapshot.
func (k *Kitchen) RestoreLedger(ingredients map[string]domain.IngredientRecord, pending map[string]bool, seq int) {
	k.ingredients = make(map[string]*domain.IngredientRecord, len(ingredients))
	for name, rec := range ingredients {
		r := rec
		k.ingredients[name] = &r
	}
	k.pending = make(map[string]bool, len(pending))
	for name, v := range pending {
		k.pending[name] = v
	}
	k.seq = seq
}

// PendingRequests returns a copy of the unresolved-request set.
func (k *Kitchen) PendingRequests() map[string]bool {
	out := make(map[string]bool, len(k.pending))
	for name, v := range k.pending {
		out[name] = v
	}
	return out
}

// Sequence returns the current order-id counter, for snapshots.
func (k *Kitchen) Sequence() int { return k.seq }

// RestoreQueue replaces the active order queue from a snapshot.
func (k *Kitchen) RestoreQueue(orders []*domain.Order) { k.orders = orders }
