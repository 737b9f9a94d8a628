// Package httpapi exposes the role operations over HTTP. Handlers are
// thin: decode, look up the actor, call the aggregate under its lock,
// write the outcome.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/restaurant"
	"restaurant-ops/internal/staff"
	"restaurant-ops/internal/tables"
)

type Handler struct {
	rest *restaurant.Restaurant
	log  *logger.Logger
}

func NewHandler(rest *restaurant.Restaurant, log *logger.Logger) *Handler {
	return &Handler{rest: rest, log: log}
}

type foodSpec struct {
	Name      string   `json:"name"`
	Additions []string `json:"additions,omitempty"`
	Removals  []string `json:"removals,omitempty"`
}

// --- staff roster ---

func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role      string `json:"role"`
		ID        string `json:"id"`
		Specialty string `json:"specialty,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	worker, err := h.rest.AddStaff(req.Role, req.ID, req.Specialty)
	if err != nil {
		writeProblem(w, http.StatusConflict, "roster_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, worker.Info())
}

func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	role, id := r.PathValue("role"), r.PathValue("id")
	h.rest.Lock()
	defer h.rest.Unlock()
	if !h.rest.RemoveStaff(role, id) {
		writeProblem(w, http.StatusNotFound, "not_found", "no such worker")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	role, id := r.PathValue("role"), r.PathValue("id")
	h.rest.Lock()
	defer h.rest.Unlock()
	worker := h.rest.Worker(role, id)
	if worker == nil {
		writeProblem(w, http.StatusNotFound, "not_found", "no such worker")
		return
	}
	worker.Info().ToggleAttendance()
	writeJSON(w, http.StatusOK, worker.Info())
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	role, id := r.PathValue("role"), r.PathValue("id")
	var req struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	worker := h.rest.Worker(role, id)
	if worker == nil {
		writeProblem(w, http.StatusNotFound, "not_found", "no such worker")
		return
	}
	if !worker.Info().SetPassword(req.Old, req.New) {
		writeProblem(w, http.StatusForbidden, "bad_credentials", "old password does not match")
		return
	}
	writeMessage(w, http.StatusOK, "password changed")
}

// --- readonly views ---

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"regular":  h.rest.Menu.Regular(),
		"specials": h.rest.Menu.Specials(),
	})
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"revenue": h.rest.Revenue()})
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	table, ok := h.table(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"number":    table.Number,
		"occupied":  table.Occupied,
		"customers": table.NumCustomers,
		"bills":     table.Bills(),
		"receipts":  table.Receipts(),
	})
}

// --- server operations ---

func (h *Handler) SeatTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bills     string `json:"bills"`
		Customers string `json:"customers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, table, ok := h.serverAndTable(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, srv.SeatTable(table, req.Bills, req.Customers))
}

func (h *Handler) RecordFood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bill string   `json:"bill"`
		Food foodSpec `json:"food"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, table, ok := h.serverAndTable(w, r)
	if !ok {
		return
	}
	food, msg := srv.NewItem(req.Food.Name, req.Food.Additions, req.Food.Removals)
	if food == nil {
		writeProblem(w, http.StatusBadRequest, "bad_item", msg)
		return
	}
	msg, recorded := srv.RecordFood(table, food, domain.BillID(req.Bill))
	if !recorded {
		writeProblem(w, http.StatusConflict, "not_recorded", msg)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bill string   `json:"bill"`
		Food foodSpec `json:"food"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, table, ok := h.serverAndTable(w, r)
	if !ok {
		return
	}
	food, msg := srv.NewItem(req.Food.Name, req.Food.Additions, req.Food.Removals)
	if food == nil {
		writeProblem(w, http.StatusBadRequest, "bad_item", msg)
		return
	}
	writeMessage(w, http.StatusOK, srv.DeleteRequest(table, food, domain.BillID(req.Bill)))
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, table, ok := h.serverAndTable(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, srv.PlaceOrder(table))
}

func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(srv *staff.Server, orderID int, table *tables.Table) string {
		return srv.DeliverOrder(orderID, table)
	})
}

func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(srv *staff.Server, orderID int, table *tables.Table) string {
		return srv.ConfirmOrder(orderID, table)
	})
}

func (h *Handler) CancelItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table int      `json:"table"`
		Food  foodSpec `json:"food"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, orderID, ok := h.serverAndOrderID(w, r)
	if !ok {
		return
	}
	table, ok := h.rest.Table(req.Table)
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such table")
		return
	}
	food, msg := srv.NewItem(req.Food.Name, req.Food.Additions, req.Food.Removals)
	if food == nil {
		writeProblem(w, http.StatusBadRequest, "bad_item", msg)
		return
	}
	msg, cancelled := srv.CancelItem(orderID, food, table)
	if !cancelled {
		writeProblem(w, http.StatusConflict, "not_cancelled", msg)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (h *Handler) ReturnOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table  int      `json:"table"`
		Food   foodSpec `json:"food"`
		Reason string   `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, orderID, ok := h.serverAndOrderID(w, r)
	if !ok {
		return
	}
	table, ok := h.rest.Table(req.Table)
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such table")
		return
	}
	food, msg := srv.NewItem(req.Food.Name, req.Food.Additions, req.Food.Removals)
	if food == nil {
		writeProblem(w, http.StatusBadRequest, "bad_item", msg)
		return
	}
	writeMessage(w, http.StatusOK, srv.ReturnOrder(orderID, table, food, req.Reason))
}

func (h *Handler) ClearTable(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, table, ok := h.serverAndTable(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, srv.ClearTable(table))
}

// --- cook operations ---

func (h *Handler) SeeOrder(w http.ResponseWriter, r *http.Request) {
	h.cookAction(w, r, func(cook *staff.Cook, order *domain.Order) string {
		return cook.SeeOrder(order)
	})
}

func (h *Handler) PrepareOrder(w http.ResponseWriter, r *http.Request) {
	h.cookAction(w, r, func(cook *staff.Cook, order *domain.Order) string {
		return cook.Prepare(order)
	})
}

func (h *Handler) CookQueue(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	cook, ok := h.rest.Cook(r.PathValue("id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such cook")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": cook.OrdersToPrepare()})
}

// --- manager operations ---

func (h *Handler) Restock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ingredient string `json:"ingredient"`
		Quantity   string `json:"quantity,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	if req.Quantity == "" {
		writeMessage(w, http.StatusOK, mgr.Restock(req.Ingredient))
		return
	}
	writeMessage(w, http.StatusOK, mgr.RestockAmount(req.Ingredient, req.Quantity))
}

func (h *Handler) ChangeThreshold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Threshold string `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, mgr.ChangeThreshold(r.PathValue("ingredient"), req.Threshold))
}

func (h *Handler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, mgr.InventoryReport())
}

func (h *Handler) RequestsReport(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	report, err := mgr.ReadRequests()
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "log_error", err.Error())
		return
	}
	writeMessage(w, http.StatusOK, report)
}

func (h *Handler) UpdateSpecial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	food, found := h.rest.Menu.Food(req.Name)
	if !found {
		writeProblem(w, http.StatusNotFound, "not_found", "no such dish")
		return
	}
	writeMessage(w, http.StatusOK, mgr.UpdateSpecialFood(food))
}

func (h *Handler) SpecialsReport(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, mgr.SpecialsReport())
}

func (h *Handler) PendingOrdersReport(w http.ResponseWriter, r *http.Request) {
	h.rest.Lock()
	defer h.rest.Unlock()
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	writeMessage(w, http.StatusOK, mgr.PendingOrdersReport())
}

// --- lookups, callers must hold the restaurant lock ---

func (h *Handler) table(w http.ResponseWriter, r *http.Request) (*tables.Table, bool) {
	number, err := strconv.Atoi(r.PathValue("table"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_table", "table number must be numeric")
		return nil, false
	}
	table, ok := h.rest.Table(number)
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such table")
		return nil, false
	}
	return table, true
}

func (h *Handler) serverAndTable(w http.ResponseWriter, r *http.Request) (*staff.Server, *tables.Table, bool) {
	srv, ok := h.rest.Server(r.PathValue("id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such server")
		return nil, nil, false
	}
	table, ok := h.table(w, r)
	if !ok {
		return nil, nil, false
	}
	return srv, table, true
}

func (h *Handler) serverAndOrderID(w http.ResponseWriter, r *http.Request) (*staff.Server, int, bool) {
	srv, ok := h.rest.Server(r.PathValue("id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such server")
		return nil, 0, false
	}
	orderID, err := strconv.Atoi(r.PathValue("order"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_order", "order id must be numeric")
		return nil, 0, false
	}
	return srv, orderID, true
}

func (h *Handler) manager(w http.ResponseWriter, r *http.Request) (*staff.Manager, bool) {
	mgr, ok := h.rest.Manager(r.PathValue("id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such manager")
		return nil, false
	}
	return mgr, true
}

func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request, fn func(*staff.Server, int, *tables.Table) string) {
	var req struct {
		Table int `json:"table"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	h.rest.Lock()
	defer h.rest.Unlock()
	srv, orderID, ok := h.serverAndOrderID(w, r)
	if !ok {
		return
	}
	table, ok := h.rest.Table(req.Table)
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such table")
		return
	}
	writeMessage(w, http.StatusOK, fn(srv, orderID, table))
}

func (h *Handler) cookAction(w http.ResponseWriter, r *http.Request, fn func(*staff.Cook, *domain.Order) string) {
	h.rest.Lock()
	defer h.rest.Unlock()
	cook, ok := h.rest.Cook(r.PathValue("id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", "no such cook")
		return
	}
	orderID, err := strconv.Atoi(r.PathValue("order"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_order", "order id must be numeric")
		return
	}
	order, found := h.rest.Kitchen.Order(orderID)
	if !found {
		writeProblem(w, http.StatusNotFound, "not_found", "order is not in the kitchen queue")
		return
	}
	writeMessage(w, http.StatusOK, fn(cook, order))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"message": msg})
}

func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}
