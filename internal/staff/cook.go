package staff

import (
	"fmt"
	"strings"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/kitchen"
)

// Cook prepares the items of orders it has seen. A cook has a specialty
// category and can only prepare items of that category.
type Cook struct {
	Member

	kitchen *kitchen.Kitchen
	events  Events
	log     *logger.Logger
}

func NewCook(id, specialty string, k *kitchen.Kitchen, events Events, log *logger.Logger) *Cook {
	return &Cook{
		Member:  NewMember(id, RoleCook, specialty),
		kitchen: k,
		events:  events,
		log:     log,
	}
}

func (c *Cook) Info() *Member { return &c.Member }

// SeeOrder registers that the cook has seen the order. Orders must be
// seen in strict id sequence: every earlier order still in the queue
// has to be seen by this cook first. A violation is reported, never
// retried.
func (c *Cook) SeeOrder(order *domain.Order) string {
	if earlier := c.kitchen.EarlierUnseen(c.ID, order.ID); earlier != nil {
		status := fmt.Sprintf("Cannot mark Order %d seen: Order %d was not seen by Cook %s", order.ID, earlier.ID, c.ID)
		c.log.Warn("see_order_rejected", status, map[string]any{"cook": c.ID, "order": order.ID, "blocking": earlier.ID})
		return status
	}
	order.MarkSeen(c.ID)
	status := fmt.Sprintf("Cook %s has seen Order %d", c.ID, order.ID)
	c.log.Fine("order_seen", status, map[string]any{"cook": c.ID, "order": order.ID})
	return status
}

// Prepare walks the order's items: specialty matches are marked ready,
// already-ready items report a no-op warning, mismatches are reported
// and skipped. The order's filled flag is recomputed afterwards and the
// aggregate status reported.
func (c *Cook) Prepare(order *domain.Order) string {
	if order == nil || !order.HasSeen(c.ID) {
		return "Cook cannot prepare an order that has not been seen"
	}
	var out strings.Builder
	for _, item := range order.Items {
		switch {
		case item.Ready:
			status := fmt.Sprintf("%s is already prepared", item.Name)
			out.WriteString(status + "\n")
			c.log.Warn("prepare_noop", status, map[string]any{"cook": c.ID, "order": order.ID, "food": item.Name})
		case item.Category == c.Specialty:
			item.Ready = true
			status := fmt.Sprintf("Cook %s prepared %s from Order %d", c.ID, item.Name, order.ID)
			out.WriteString(status + "\n")
			c.log.Fine("item_prepared", status, map[string]any{"cook": c.ID, "order": order.ID, "food": item.Name})
		default:
			status := fmt.Sprintf("Cook %s of type %s can't prepare %s of type %s", c.ID, c.Specialty, item.Name, item.Category)
			out.WriteString(status + "\n")
			c.log.Warn("prepare_type_mismatch", status, map[string]any{"cook": c.ID, "order": order.ID, "food": item.Name})
		}
	}
	if order.RecomputeFilled() {
		out.WriteString(fmt.Sprintf("Order %d is ready", order.ID))
		c.events.OrderStatus(order, "queued", "filled")
		c.log.Info("order_filled", fmt.Sprintf("Order %d has been filled", order.ID), map[string]any{"order": order.ID})
	} else {
		out.WriteString(fmt.Sprintf("Order %d is not ready", order.ID))
	}
	return out.String()
}

// OrdersToPrepare lists queued orders containing at least one item of
// this cook's specialty.
func (c *Cook) OrdersToPrepare() []*domain.Order {
	var orders []*domain.Order
	for _, order := range c.kitchen.Orders() {
		if order.ContainsCategory(c.Specialty) {
			orders = append(orders, order)
		}
	}
	return orders
}
