package restaurant

import (
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/staff"
	"restaurant-ops/internal/tables"
)

// StaffState is one roster entry in a snapshot. Assigned orders are
// referenced by id so restore re-links the same Order values shared
// with the kitchen queue and table histories.
type StaffState struct {
	Member   staff.Member `json:"member"`
	Assigned []int        `json:"assigned,omitempty"`
}

// State is the whole-restaurant snapshot: everything needed to resume
// after a restart except the menu, which is rebuilt from the data files
// so catalog edits take effect on reload.
type State struct {
	Ingredients map[string]domain.IngredientRecord `json:"ingredients"`
	Pending     map[string]bool                    `json:"pending_requests"`
	Sequence    int                                `json:"order_sequence"`
	Orders      []*domain.Order                    `json:"orders"`
	Queue       []int                              `json:"queue"`
	Tables      []tables.State                     `json:"tables"`
	Staff       []StaffState                       `json:"staff"`
	Revenue     float64                            `json:"revenue"`
}

// Snapshot captures the aggregate. Orders are collected once, from the
// kitchen queue, the table histories, and the servers' tracking sets,
// and referenced by id everywhere else.
func (r *Restaurant) Snapshot() *State {
	s := &State{
		Ingredients: r.Kitchen.Inventory(),
		Pending:     r.Kitchen.PendingRequests(),
		Sequence:    r.Kitchen.Sequence(),
		Revenue:     r.revenue.Total(),
	}

	seen := make(map[int]bool)
	collect := func(o *domain.Order) {
		if !seen[o.ID] {
			seen[o.ID] = true
			s.Orders = append(s.Orders, o)
		}
	}
	for _, o := range r.Kitchen.Orders() {
		collect(o)
		s.Queue = append(s.Queue, o.ID)
	}
	for _, t := range r.Tables() {
		for _, bill := range t.Bills() {
			for _, o := range t.Orders(bill) {
				collect(o)
			}
		}
		s.Tables = append(s.Tables, t.Snapshot())
	}
	for _, srv := range r.servers {
		entry := StaffState{Member: srv.Member}
		for _, o := range srv.AssignedOrders() {
			collect(o)
			entry.Assigned = append(entry.Assigned, o.ID)
		}
		s.Staff = append(s.Staff, entry)
	}
	for _, c := range r.cooks {
		s.Staff = append(s.Staff, StaffState{Member: c.Member})
	}
	for _, m := range r.managers {
		s.Staff = append(s.Staff, StaffState{Member: m.Member})
	}
	return s
}

// Restore rebuilds the aggregate from a snapshot. The menu keeps its
// freshly-loaded contents; any catalog ingredient the restored ledger
// does not know is seeded at the default stock, mirroring first-run
// seeding for new menu items.
func (r *Restaurant) Restore(s *State) {
	r.Kitchen.RestoreLedger(s.Ingredients, s.Pending, s.Sequence)

	byID := make(map[int]*domain.Order, len(s.Orders))
	for _, o := range s.Orders {
		byID[o.ID] = o
	}
	queue := make([]*domain.Order, 0, len(s.Queue))
	for _, id := range s.Queue {
		if o, ok := byID[id]; ok {
			queue = append(queue, o)
		}
	}
	r.Kitchen.RestoreQueue(queue)

	r.tables = make(map[int]*tables.Table, len(s.Tables))
	for _, ts := range s.Tables {
		r.tables[ts.Number] = tables.Restore(ts, byID)
	}
	for n := 1; n <= DefaultTableCount; n++ {
		if _, ok := r.tables[n]; !ok {
			r.tables[n] = tables.New(n)
		}
	}

	r.servers = nil
	r.cooks = nil
	r.managers = nil
	for _, entry := range s.Staff {
		member, err := r.AddStaff(entry.Member.Role, entry.Member.ID, entry.Member.Specialty)
		if err != nil {
			continue
		}
		*member.Info() = entry.Member
		if srv, ok := member.(*staff.Server); ok {
			assigned := make([]*domain.Order, 0, len(entry.Assigned))
			for _, id := range entry.Assigned {
				if o, ok := byID[id]; ok {
					assigned = append(assigned, o)
				}
			}
			srv.RestoreAssigned(assigned)
		}
	}

	r.revenue.Restore(s.Revenue)

	// new catalog ingredients get the default stock
	for _, name := range r.Menu.IngredientNames() {
		if !r.Kitchen.HasIngredient(name) {
			r.Kitchen.AddIngredient(name, 20, 20)
		}
	}
}
