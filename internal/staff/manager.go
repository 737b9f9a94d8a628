package staff

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/kitchen"
	"restaurant-ops/internal/menu"
)

// OverstockRatio is the minimum kitchen-quantity to required-quantity
// ratio, per distinct ingredient, for a dish to qualify as a special.
const OverstockRatio = 30

// Manager adjusts the inventory ledger, reads restock requests, and
// promotes overstocked dishes to the discounted specials list.
type Manager struct {
	Member

	kitchen  *kitchen.Kitchen
	menu     *menu.Catalog
	requests RequestReader
	log      *logger.Logger
}

func NewManager(id string, k *kitchen.Kitchen, c *menu.Catalog, requests RequestReader, log *logger.Logger) *Manager {
	return &Manager{
		Member:   NewMember(id, RoleManager, NoSpecialty),
		kitchen:  k,
		menu:     c,
		requests: requests,
		log:      log,
	}
}

func (m *Manager) Info() *Member { return &m.Member }

// ChangeThreshold replaces an ingredient's threshold. Input arrives raw;
// non-numeric and negative values are rejected.
func (m *Manager) ChangeThreshold(ingredient, threshold string) string {
	value, err := strconv.Atoi(threshold)
	if err != nil || value < 0 {
		status := "Cannot change threshold: please enter a non-negative integer"
		m.log.Warn("change_threshold_rejected", status, map[string]any{"ingredient": ingredient, "input": threshold})
		return status
	}
	old, ok := m.kitchen.SetThreshold(ingredient, value)
	if !ok {
		status := fmt.Sprintf("Cannot change threshold: %s is not stocked", ingredient)
		m.log.Warn("change_threshold_rejected", status, map[string]any{"ingredient": ingredient})
		return status
	}
	status := fmt.Sprintf("Manager %s changed threshold of %s from %d to %d", m.ID, ingredient, old, value)
	m.log.Fine("threshold_changed", status, map[string]any{"manager": m.ID, "ingredient": ingredient, "from": old, "to": value})
	return status
}

// Restock adds the default quantity to an ingredient.
func (m *Manager) Restock(ingredient string) string {
	return m.restock(ingredient, kitchen.DefaultRestock)
}

// RestockAmount adds a specific quantity, passed as raw input.
func (m *Manager) RestockAmount(ingredient, quantity string) string {
	value, err := strconv.Atoi(quantity)
	if err != nil || value < 0 {
		status := "Cannot restock: please enter a non-negative integer"
		m.log.Warn("restock_rejected", status, map[string]any{"ingredient": ingredient, "input": quantity})
		return status
	}
	return m.restock(ingredient, value)
}

func (m *Manager) restock(ingredient string, quantity int) string {
	known := m.kitchen.HasIngredient(ingredient)
	from, to := m.kitchen.Restock(ingredient, quantity)
	var status string
	if known {
		status = fmt.Sprintf("Manager %s restocked %s from %d to %d", m.ID, ingredient, from, to)
	} else {
		status = fmt.Sprintf("Manager %s stocked %s to %d", m.ID, ingredient, to)
	}
	m.log.Fine("ingredient_restocked", status, map[string]any{"manager": m.ID, "ingredient": ingredient, "from": from, "to": to})
	return status
}

// InventoryReport renders the ledger listing.
func (m *Manager) InventoryReport() string { return m.kitchen.RenderInventory() }

// ReadRequests returns the restock request queue contents.
func (m *Manager) ReadRequests() (string, error) {
	contents, err := m.requests.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read restock requests: %w", err)
	}
	return contents, nil
}

// UpdateSpecialFood promotes a dish to the specials list when every
// distinct ingredient it needs is overstocked. Evaluation short-circuits
// at the first disqualifying ingredient. Promotion applies a one-time
// 10% discount; an already-special dish is skipped.
func (m *Manager) UpdateSpecialFood(food *domain.Food) string {
	if m.menu.IsSpecial(food) {
		return fmt.Sprintf("%s is already a special", food.Name)
	}
	required := food.RequiredQuantities()
	for _, ingredient := range food.Ingredients {
		need := required[ingredient]
		have := m.kitchen.Quantity(ingredient)
		if have/need < OverstockRatio {
			status := fmt.Sprintf("Cannot promote %s: %s is not overstocked", food.Name, ingredient)
			m.log.Warn("special_rejected", status, map[string]any{"food": food.Name, "ingredient": ingredient, "have": have, "need": need})
			return status
		}
	}
	m.discount(food)
	m.menu.PromoteSpecial(food)
	status := fmt.Sprintf("%s promoted to the specials list at %.2f", food.Name, food.Price)
	m.log.Fine("special_promoted", status, map[string]any{"manager": m.ID, "food": food.Name, "price": food.Price})
	return status
}

// discount applies the one-time specials discount; the flag prevents
// re-discounting.
func (m *Manager) discount(food *domain.Food) {
	if food.Discounted {
		return
	}
	food.Price = food.DiscountedPrice()
	food.Discounted = true
	m.log.Fine("food_discounted", fmt.Sprintf("The new price of %s is %.2f", food.Name, food.Price),
		map[string]any{"food": food.Name, "price": food.Price})
}

// SpecialsReport lists the discounted dishes with their prices.
func (m *Manager) SpecialsReport() string {
	var b strings.Builder
	b.WriteString("================ Special Offer ================\n")
	for _, food := range m.menu.Specials() {
		fmt.Fprintf(&b, "%s ---- %.2f\n", food.Name, food.Price)
	}
	b.WriteString("===============================================")
	return b.String()
}

// PendingOrdersReport lists orders that are filled but not delivered.
func (m *Manager) PendingOrdersReport() string {
	var b strings.Builder
	for _, order := range m.kitchen.Orders() {
		if order.Filled && !order.Delivered {
			b.WriteString(order.String() + "\n")
		}
	}
	if b.Len() == 0 {
		return "There are no pending orders."
	}
	return b.String()
}
