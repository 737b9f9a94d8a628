package staff

import (
	"fmt"
	"strconv"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/kitchen"
	"restaurant-ops/internal/menu"
	"restaurant-ops/internal/tables"
)

// Server records food selections against a table's bills, places orders
// with the kitchen, delivers filled orders back, and settles bills at
// clear-table. Every mutation validates first and reports a status
// string; a rejected operation leaves no partial state.
type Server struct {
	Member

	kitchen  *kitchen.Kitchen
	menu     *menu.Catalog
	revenue  *Revenue
	assigned []*domain.Order
	events   Events
	log      *logger.Logger
}

func NewServer(id string, k *kitchen.Kitchen, c *menu.Catalog, revenue *Revenue, events Events, log *logger.Logger) *Server {
	return &Server{
		Member:  NewMember(id, RoleServer, NoSpecialty),
		kitchen: k,
		menu:    c,
		revenue: revenue,
		events:  events,
		log:     log,
	}
}

func (s *Server) Info() *Member { return &s.Member }

func (s *Server) AssignedOrders() []*domain.Order { return s.assigned }

// SeatTable occupies a table with the given paying-customer and guest
// counts, both passed as raw input.
func (s *Server) SeatTable(table *tables.Table, numBills, numCustomers string) string {
	bills, err1 := strconv.Atoi(numBills)
	guests, err2 := strconv.Atoi(numCustomers)
	if err1 != nil || err2 != nil || bills <= 0 || guests <= 0 {
		return "Please enter the right input."
	}
	if bills > guests {
		return "Please enter proper number of paying customers."
	}
	if table.Occupied {
		status := fmt.Sprintf("Table %d is already occupied", table.Number)
		s.log.Warn("seat_table_rejected", status, map[string]any{"table": table.Number})
		return status
	}
	table.Seat(bills, guests)
	status := fmt.Sprintf("Number of customers is %d and number of paying customers is %d", guests, bills)
	s.log.Fine("table_seated", status, map[string]any{"server": s.ID, "table": table.Number, "bills": bills, "customers": guests})
	return status
}

// NewItem builds an orderable instance of a menu dish, with optional
// ingredient additions and removals. Additions are priced from the
// ingredient price list; removals do not change the price.
func (s *Server) NewItem(name string, additions, removals []string) (*domain.Food, string) {
	item, ok := s.menu.NewItem(name)
	if !ok {
		return nil, fmt.Sprintf("%s is not on the menu", name)
	}
	for _, ing := range removals {
		if !item.RemoveIngredient(ing) {
			return nil, fmt.Sprintf("Cannot remove %s from %s", ing, name)
		}
	}
	for _, ing := range additions {
		if !s.menu.HasIngredient(ing) {
			return nil, fmt.Sprintf("%s is not a known ingredient", ing)
		}
		item.AddIngredient(ing)
		item.Price += s.menu.IngredientPrice(ing)
	}
	return item, ""
}

// RecordFood validates availability, reserves ingredients, and adds the
// item to the bill's pending list.
func (s *Server) RecordFood(table *tables.Table, food *domain.Food, bill domain.BillID) (string, bool) {
	if !table.Occupied || !table.HasBill(bill) {
		status := "Cannot record food order: table is unoccupied or bill does not exist"
		s.log.Warn("record_food_rejected", status, map[string]any{"table": table.Number, "bill": string(bill)})
		return status, false
	}
	if s.hasUndeliveredReady() {
		status := "Cannot record food order: there are pending orders to be delivered"
		s.log.Warn("record_food_rejected", status, map[string]any{"server": s.ID})
		return status, false
	}
	return s.record(table, food, bill)
}

// record is the availability gate shared with returns: menu membership,
// then the all-or-nothing ingredient reservation.
func (s *Server) record(table *tables.Table, food *domain.Food, bill domain.BillID) (string, bool) {
	if !s.menu.HasFood(food.Name) {
		status := fmt.Sprintf("Cannot record food order: %s not on menu", food.Name)
		s.log.Warn("record_food_rejected", status, map[string]any{"food": food.Name})
		return status, false
	}
	if !s.kitchen.Reserve(food) {
		status := fmt.Sprintf("Cannot record food order: not enough ingredients for %s", food.Name)
		s.log.Warn("record_food_rejected", status, map[string]any{"food": food.Name})
		return status, false
	}
	table.AddPending(bill, food)
	status := fmt.Sprintf("Server %s records an order of %s from Table %d", s.ID, food.Name, table.Number)
	s.log.Fine("food_recorded", status, map[string]any{"server": s.ID, "food": food.Name, "table": table.Number, "bill": string(bill)})
	return status, true
}

// DeleteRequest removes a not-yet-placed item from the bill's pending
// list and returns its reserved ingredients to the kitchen.
func (s *Server) DeleteRequest(table *tables.Table, food *domain.Food, bill domain.BillID) string {
	if !table.Occupied || !table.HasBill(bill) {
		status := "Cannot delete food order: table is unoccupied or bill does not exist"
		s.log.Warn("delete_request_rejected", status, map[string]any{"table": table.Number, "bill": string(bill)})
		return status
	}
	stored, ok := table.FindPending(bill, food)
	if !ok {
		status := fmt.Sprintf("Cannot delete food order: %s is not in %s's requests", food.Name, bill)
		s.log.Warn("delete_request_rejected", status, map[string]any{"food": food.Name, "bill": string(bill)})
		return status
	}
	table.RemovePending(bill, stored)
	s.kitchen.Release(stored.Ingredients)
	status := fmt.Sprintf("%s is deleted from %s's requests", food.Name, bill)
	s.log.Fine("request_deleted", status, map[string]any{"server": s.ID, "food": food.Name, "bill": string(bill)})
	return status
}

// PlaceOrder turns every non-empty pending list on the table into a new
// order: recorded against the table, assigned to this server, and
// enqueued for the kitchen. Empty bills are skipped; a table with no
// pending items at all is a no-op.
func (s *Server) PlaceOrder(table *tables.Table) string {
	if !table.HasRequests() {
		status := fmt.Sprintf("Cannot place order for Table %d: table has no pending requests", table.Number)
		s.log.Warn("place_order_rejected", status, map[string]any{"table": table.Number})
		return status
	}
	if s.hasUndeliveredReady() {
		status := fmt.Sprintf("Cannot place order for Table %d: there are pending orders to be delivered", table.Number)
		s.log.Warn("place_order_rejected", status, map[string]any{"table": table.Number})
		return status
	}
	return s.place(table)
}

func (s *Server) place(table *tables.Table) string {
	for _, bill := range table.Bills() {
		if len(table.Pending(bill)) == 0 {
			continue
		}
		order := domain.NewOrder(s.kitchen.NextOrderID(), table.TakePending(bill), table.Number, bill)
		table.AddOrder(order)
		s.assigned = append(s.assigned, order)
		s.kitchen.Enqueue(order)
		s.events.OrderStatus(order, "pending", "queued")
	}
	status := fmt.Sprintf("Server %s places final orders from Table %d", s.ID, table.Number)
	s.log.Fine("order_placed", status, map[string]any{"server": s.ID, "table": table.Number})
	return status
}

// DeliverOrder brings a filled order to its table: records it in the
// bill history, removes it from the kitchen queue, and marks delivery.
func (s *Server) DeliverOrder(orderID int, table *tables.Table) string {
	order := s.assignedOrder(orderID)
	if order == nil {
		status := fmt.Sprintf("Cannot deliver Order %d: not assigned to Server %s", orderID, s.ID)
		s.log.Warn("deliver_rejected", status, map[string]any{"order": orderID, "server": s.ID})
		return status
	}
	if order.Delivered {
		status := fmt.Sprintf("Cannot deliver Order %d: order has already been delivered", orderID)
		s.log.Warn("deliver_rejected", status, map[string]any{"order": orderID})
		return status
	}
	if !order.Filled {
		return fmt.Sprintf("Cannot deliver Order %d: not ready yet", orderID)
	}
	if order.TableNum != table.Number {
		status := fmt.Sprintf("Cannot deliver Order %d: order not placed by Table %d", orderID, table.Number)
		s.log.Warn("deliver_rejected", status, map[string]any{"order": orderID, "table": table.Number})
		return status
	}
	table.AddOrder(order)
	order.Delivered = true
	s.kitchen.RemoveOrder(order)
	s.events.OrderStatus(order, "filled", "delivered")
	status := fmt.Sprintf("Server %s delivered Order %d to Table %d", s.ID, orderID, table.Number)
	s.log.Fine("order_delivered", status, map[string]any{"server": s.ID, "order": orderID, "table": table.Number})
	return status
}

// ConfirmOrder finishes a delivered order: marks it confirmed and drops
// it from this server's active tracking. Confirmation has no ingredient
// effect.
func (s *Server) ConfirmOrder(orderID int, table *tables.Table) string {
	order := s.assignedOrder(orderID)
	if order == nil {
		status := fmt.Sprintf("Cannot confirm Order %d: not assigned to Server %s", orderID, s.ID)
		s.log.Warn("confirm_rejected", status, map[string]any{"order": orderID, "server": s.ID})
		return status
	}
	if !order.Delivered {
		status := fmt.Sprintf("Cannot confirm Order %d: it has not been delivered", orderID)
		s.log.Warn("confirm_rejected", status, map[string]any{"order": orderID, "server": s.ID})
		return status
	}
	order.Confirmed = true
	s.dropAssigned(order)
	s.events.OrderStatus(order, "delivered", "confirmed")
	status := fmt.Sprintf("Server %s confirms Order %d in Table %d", s.ID, orderID, table.Number)
	s.log.Fine("order_confirmed", status, map[string]any{"server": s.ID, "order": orderID, "table": table.Number})
	return status
}

// CancelItem removes a not-yet-prepared item from a placed order and
// releases its reserved ingredients. An order emptied by the removal is
// destroyed: detached from the kitchen queue, the table, and this
// server's tracking.
func (s *Server) CancelItem(orderID int, food *domain.Food, table *tables.Table) (string, bool) {
	order := s.assignedOrder(orderID)
	if order == nil {
		status := fmt.Sprintf("Cannot cancel food in Order %d: not assigned to Server %s", orderID, s.ID)
		s.log.Warn("cancel_rejected", status, map[string]any{"order": orderID, "server": s.ID})
		return status, false
	}
	if order.TableNum != table.Number {
		status := fmt.Sprintf("Cannot cancel food in Order %d: wrong table", orderID)
		s.log.Warn("cancel_rejected", status, map[string]any{"order": orderID, "table": table.Number})
		return status, false
	}
	if !order.ItemUnready(food) {
		status := fmt.Sprintf("Cannot cancel food in Order %d: %s has already been prepared or does not exist", orderID, food.Name)
		s.log.Warn("cancel_rejected", status, map[string]any{"order": orderID, "food": food.Name})
		return status, false
	}
	order.DeleteItem(food)
	order.RecomputeFilled()
	s.kitchen.Release(food.Ingredients)
	if len(order.Items) == 0 {
		s.kitchen.RemoveOrder(order)
		table.RemoveOrder(order)
		s.dropAssigned(order)
		s.events.OrderStatus(order, "queued", "cancelled")
	}
	status := fmt.Sprintf("Server %s cancelled %s in Order %d", s.ID, food.Name, orderID)
	s.log.Fine("item_cancelled", status, map[string]any{"server": s.ID, "order": orderID, "food": food.Name})
	return status, true
}

// ReturnOrder handles a post-delivery return: the dish must belong to
// the delivered order, and a fresh instance must pass the ingredient
// gate before the return is accepted. The replacement is recorded and
// placed immediately; the original item is removed with the reason.
func (s *Server) ReturnOrder(orderID int, table *tables.Table, food *domain.Food, reason string) string {
	order := s.assignedOrder(orderID)
	if order == nil {
		status := fmt.Sprintf("Cannot return Order %d: not assigned to Server %s", orderID, s.ID)
		s.log.Warn("return_rejected", status, map[string]any{"order": orderID, "server": s.ID})
		return status
	}
	if order.TableNum != table.Number {
		status := fmt.Sprintf("Cannot return Order %d: order not placed by Table %d", orderID, table.Number)
		s.log.Warn("return_rejected", status, map[string]any{"order": orderID, "table": table.Number})
		return status
	}
	if !order.HasItem(food) {
		status := fmt.Sprintf("Cannot return Order %d: order does not contain %s", orderID, food.Name)
		s.log.Warn("return_rejected", status, map[string]any{"order": orderID, "food": food.Name})
		return status
	}
	if !order.Delivered {
		status := fmt.Sprintf("Cannot return Order %d: not been delivered", orderID)
		s.log.Warn("return_rejected", status, map[string]any{"order": orderID})
		return status
	}
	replacement := food.Clone()
	replacement.Ready = false
	if _, ok := s.record(table, replacement, order.Bill); !ok {
		status := fmt.Sprintf("Cannot return Order %d: not enough ingredients for %s", orderID, food.Name)
		s.log.Warn("return_rejected", status, map[string]any{"order": orderID, "food": food.Name})
		return status
	}
	s.place(table)
	order.DeleteItem(food)
	s.events.OrderStatus(order, "delivered", "returned")
	status := fmt.Sprintf("%s in Order %d was returned: %s", food.Name, orderID, reason)
	s.log.Fine("item_returned", status, map[string]any{"server": s.ID, "order": orderID, "food": food.Name, "reason": reason})
	return status
}

// ClearTable settles every bill group with the service charge on top of
// the taxed total, accrues the restaurant-wide revenue, and resets the
// table. Parties at or over the gratuity size get an annotation only.
func (s *Server) ClearTable(table *tables.Table) string {
	if !table.Occupied {
		status := fmt.Sprintf("Cannot clear table: Table %d is already unoccupied", table.Number)
		s.log.Warn("clear_table_rejected", status, map[string]any{"table": table.Number})
		return status
	}
	out := fmt.Sprintf("Server %s has cleared Table %d: ", s.ID, table.Number)
	sep := ""
	for _, bill := range table.Bills() {
		amount := table.Bill(bill) * tables.ServiceRate
		s.revenue.Add(amount)
		out += fmt.Sprintf("%s%s - %.2f", sep, bill, amount)
		sep = ", "
	}
	if table.NumCustomers >= tables.GratuityPartySize {
		out += " - (gratuity tip)"
	}
	out += fmt.Sprintf(" - Total: %.2f", s.revenue.Total())
	table.Clear()
	s.log.Fine("table_cleared", out, map[string]any{"server": s.ID, "table": table.Number})
	return out
}

// hasUndeliveredReady reports whether any assigned order is filled and
// waiting to be delivered. New recordings and placements are blocked
// until the ready order goes out.
func (s *Server) hasUndeliveredReady() bool {
	for _, order := range s.assigned {
		if order.Filled && !order.Delivered {
			return true
		}
	}
	return false
}

func (s *Server) assignedOrder(orderID int) *domain.Order {
	for _, order := range s.assigned {
		if order.ID == orderID {
			return order
		}
	}
	return nil
}

func (s *Server) dropAssigned(order *domain.Order) {
	for i, o := range s.assigned {
		if o.ID == order.ID {
			s.assigned = append(s.assigned[:i], s.assigned[i+1:]...)
			return
		}
	}
}

// RestoreAssigned re-links the server's active tracking set from a
// snapshot.
func (s *Server) RestoreAssigned(orders []*domain.Order) { s.assigned = orders }
