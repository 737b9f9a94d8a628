package httpapi

import (
	"net/http"

	"github.com/rs/cors"
)

// NewRouter wires every operation onto a method-aware mux and wraps it
// with CORS so a front-of-house UI can call the API directly.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /staff", h.AddStaff)
	mux.HandleFunc("DELETE /staff/{role}/{id}", h.RemoveStaff)
	mux.HandleFunc("POST /staff/{role}/{id}/attendance", h.ToggleAttendance)
	mux.HandleFunc("POST /staff/{role}/{id}/password", h.ChangePassword)

	mux.HandleFunc("GET /menu", h.GetMenu)
	mux.HandleFunc("GET /revenue", h.GetRevenue)
	mux.HandleFunc("GET /tables/{table}", h.GetTable)

	mux.HandleFunc("POST /servers/{id}/tables/{table}/seat", h.SeatTable)
	mux.HandleFunc("POST /servers/{id}/tables/{table}/requests", h.RecordFood)
	mux.HandleFunc("DELETE /servers/{id}/tables/{table}/requests", h.DeleteRequest)
	mux.HandleFunc("POST /servers/{id}/tables/{table}/orders", h.PlaceOrder)
	mux.HandleFunc("POST /servers/{id}/tables/{table}/clear", h.ClearTable)
	mux.HandleFunc("POST /servers/{id}/orders/{order}/deliver", h.DeliverOrder)
	mux.HandleFunc("POST /servers/{id}/orders/{order}/confirm", h.ConfirmOrder)
	mux.HandleFunc("POST /servers/{id}/orders/{order}/cancel", h.CancelItem)
	mux.HandleFunc("POST /servers/{id}/orders/{order}/return", h.ReturnOrder)

	mux.HandleFunc("GET /cooks/{id}/orders", h.CookQueue)
	mux.HandleFunc("POST /cooks/{id}/orders/{order}/see", h.SeeOrder)
	mux.HandleFunc("POST /cooks/{id}/orders/{order}/prepare", h.PrepareOrder)

	mux.HandleFunc("POST /managers/{id}/restock", h.Restock)
	mux.HandleFunc("PUT /managers/{id}/thresholds/{ingredient}", h.ChangeThreshold)
	mux.HandleFunc("GET /managers/{id}/inventory", h.InventoryReport)
	mux.HandleFunc("GET /managers/{id}/requests", h.RequestsReport)
	mux.HandleFunc("POST /managers/{id}/specials", h.UpdateSpecial)
	mux.HandleFunc("GET /managers/{id}/specials", h.SpecialsReport)
	mux.HandleFunc("GET /managers/{id}/orders/pending", h.PendingOrdersReport)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}
