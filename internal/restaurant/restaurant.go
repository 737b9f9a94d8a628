package restaurant

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/kitchen"
	"restaurant-ops/internal/menu"
	"restaurant-ops/internal/staff"
	"restaurant-ops/internal/tables"
)

// DefaultTableCount matches the floor plan seeded on first run.
const DefaultTableCount = 3

// Restaurant is the aggregate: one kitchen, one menu, the tables, the
// staff roster, and the running revenue. All mutating operations go
// through the role structs; callers serialize with Lock/Unlock (the
// engine itself is single-writer).
type Restaurant struct {
	mu sync.Mutex

	Kitchen *kitchen.Kitchen
	Menu    *menu.Catalog

	tables   map[int]*tables.Table
	servers  []*staff.Server
	cooks    []*staff.Cook
	managers []*staff.Manager
	revenue  *staff.Revenue

	requests staff.RequestReader
	events   staff.Events
	log      *logger.Logger
}

func New(catalog *menu.Catalog, sink kitchen.RequestSink, requests staff.RequestReader, events staff.Events, log *logger.Logger) *Restaurant {
	r := &Restaurant{
		Kitchen:  kitchen.New(sink, log),
		Menu:     catalog,
		tables:   make(map[int]*tables.Table),
		revenue:  &staff.Revenue{},
		requests: requests,
		events:   events,
		log:      log,
	}
	r.seedKitchen()
	for n := 1; n <= DefaultTableCount; n++ {
		r.tables[n] = tables.New(n)
	}
	return r
}

// Lock serializes a mutating operation against the aggregate.
func (r *Restaurant) Lock()   { r.mu.Lock() }
func (r *Restaurant) Unlock() { r.mu.Unlock() }

// seedKitchen stocks the opening inventory.
func (r *Restaurant) seedKitchen() {
	seed := []struct {
		name                string
		quantity, threshold int
	}{
		{"cheese", 50, 20},
		{"bun", 30, 10},
		{"tomato", 25, 15},
		{"flour", 100, 50},
		{"egg", 80, 30},
		{"beef patty", 80, 30},
		{"lettuce", 50, 30},
		{"gt scoop", 40, 25},
		{"fries", 40, 20},
		{"gravy", 35, 25},
		{"ground beef", 45, 25},
	}
	for _, s := range seed {
		r.Kitchen.AddIngredient(s.name, s.quantity, s.threshold)
	}
}

func (r *Restaurant) Table(number int) (*tables.Table, bool) {
	t, ok := r.tables[number]
	return t, ok
}

func (r *Restaurant) Tables() []*tables.Table {
	numbers := make([]int, 0, len(r.tables))
	for n := range r.tables {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	out := make([]*tables.Table, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, r.tables[n])
	}
	return out
}

func (r *Restaurant) Revenue() float64 { return r.revenue.Total() }

// canonicalRole maps any casing of a role name onto the roster
// constants, so HTTP callers can say "server" and "Server" alike.
func canonicalRole(role string) string {
	switch strings.ToLower(role) {
	case "server":
		return staff.RoleServer
	case "cook":
		return staff.RoleCook
	case "manager":
		return staff.RoleManager
	}
	return role
}

// AddStaff hires a new roster member. The specialty is only meaningful
// for cooks. Duplicate role+id pairs are rejected.
func (r *Restaurant) AddStaff(role, id, specialty string) (staff.Staff, error) {
	role = canonicalRole(role)
	if r.IsWorker(role, id) {
		return nil, fmt.Errorf("%s %s already on the roster", role, id)
	}
	switch role {
	case staff.RoleServer:
		s := staff.NewServer(id, r.Kitchen, r.Menu, r.revenue, r.events, r.log)
		r.servers = append(r.servers, s)
		return s, nil
	case staff.RoleCook:
		c := staff.NewCook(id, specialty, r.Kitchen, r.events, r.log)
		r.cooks = append(r.cooks, c)
		return c, nil
	case staff.RoleManager:
		m := staff.NewManager(id, r.Kitchen, r.Menu, r.requests, r.log)
		r.managers = append(r.managers, m)
		return m, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

// RemoveStaff fires a roster member.
func (r *Restaurant) RemoveStaff(role, id string) bool {
	switch canonicalRole(role) {
	case staff.RoleServer:
		for i, s := range r.servers {
			if s.ID == id {
				r.servers = append(r.servers[:i], r.servers[i+1:]...)
				return true
			}
		}
	case staff.RoleCook:
		for i, c := range r.cooks {
			if c.ID == id {
				r.cooks = append(r.cooks[:i], r.cooks[i+1:]...)
				return true
			}
		}
	case staff.RoleManager:
		for i, m := range r.managers {
			if m.ID == id {
				r.managers = append(r.managers[:i], r.managers[i+1:]...)
				return true
			}
		}
	}
	return false
}

// IsWorker reports whether a role+id pair is on the roster.
func (r *Restaurant) IsWorker(role, id string) bool {
	return r.Worker(role, id) != nil
}

// Worker looks up a roster member by role and id.
func (r *Restaurant) Worker(role, id string) staff.Staff {
	switch canonicalRole(role) {
	case staff.RoleServer:
		for _, s := range r.servers {
			if s.ID == id {
				return s
			}
		}
	case staff.RoleCook:
		for _, c := range r.cooks {
			if c.ID == id {
				return c
			}
		}
	case staff.RoleManager:
		for _, m := range r.managers {
			if m.ID == id {
				return m
			}
		}
	}
	return nil
}

func (r *Restaurant) Server(id string) (*staff.Server, bool) {
	for _, s := range r.servers {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (r *Restaurant) Cook(id string) (*staff.Cook, bool) {
	for _, c := range r.cooks {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (r *Restaurant) Manager(id string) (*staff.Manager, bool) {
	for _, m := range r.managers {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}
