package domain

import "fmt"

// BillID keys a table's per-bill grouping of pending items and placed
// orders. It identifies a paying customer, not an order.
type BillID string

// IngredientRecord is one ledger row of the kitchen inventory.
type IngredientRecord struct {
	Quantity  int `json:"quantity"`
	Threshold int `json:"threshold"`
}

// Order is the unit of kitchen work: the items one bill sent to the
// kitchen in a single placement. Invariants: Filled is true iff every
// item is ready, Delivered implies Filled, Confirmed implies Delivered.
type Order struct {
	ID        int             `json:"id"`
	Items     []*Food         `json:"items"`
	TableNum  int             `json:"table_num"`
	Bill      BillID          `json:"bill_id"`
	Filled    bool            `json:"filled"`
	Delivered bool            `json:"delivered"`
	Confirmed bool            `json:"confirmed"`
	SeenBy    map[string]bool `json:"seen_by"`
}

func NewOrder(id int, items []*Food, tableNum int, bill BillID) *Order {
	return &Order{
		ID:       id,
		Items:    items,
		TableNum: tableNum,
		Bill:     bill,
		SeenBy:   make(map[string]bool),
	}
}

func (o *Order) HasSeen(cookID string) bool { return o.SeenBy[cookID] }

func (o *Order) MarkSeen(cookID string) {
	if o.SeenBy == nil {
		o.SeenBy = make(map[string]bool)
	}
	o.SeenBy[cookID] = true
}

// HasItem reports whether the order holds an item equal to food.
func (o *Order) HasItem(food *Food) bool {
	for _, item := range o.Items {
		if item.Equal(food) {
			return true
		}
	}
	return false
}

// ItemUnready reports whether an item equal to food is present and not
// yet prepared. A missing item reads as false, not as unready.
func (o *Order) ItemUnready(food *Food) bool {
	for _, item := range o.Items {
		if item.Equal(food) {
			return !item.Ready
		}
	}
	return false
}

// DeleteItem removes the first item equal to food.
func (o *Order) DeleteItem(food *Food) bool {
	for i, item := range o.Items {
		if item.Equal(food) {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return true
		}
	}
	return false
}

// RecomputeFilled re-derives Filled from item readiness and returns it.
func (o *Order) RecomputeFilled() bool {
	filled := true
	for _, item := range o.Items {
		if !item.Ready {
			filled = false
			break
		}
	}
	o.Filled = filled
	return filled
}

// LineTotal sums the item prices, before tax.
func (o *Order) LineTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// ContainsCategory reports whether any item is of the given category.
func (o *Order) ContainsCategory(category string) bool {
	for _, item := range o.Items {
		if item.Category == category {
			return true
		}
	}
	return false
}

func (o *Order) String() string {
	return fmt.Sprintf("Order %d from Table %d", o.ID, o.TableNum)
}
