package staff

import "restaurant-ops/internal/domain"

// Roles and the placeholder specialty for non-cooks.
const (
	RoleServer  = "Server"
	RoleCook    = "Cook"
	RoleManager = "Manager"

	NoSpecialty = "Not Available"

	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// Member is the shared staff capability: identity, credentials, and
// attendance. Role structs embed it; there is no inheritance hierarchy.
type Member struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Specialty  string `json:"specialty"`
	Attendance string `json:"attendance"`
	Password   string `json:"password"`
}

func NewMember(id, role, specialty string) Member {
	return Member{
		ID:         id,
		Role:       role,
		Specialty:  specialty,
		Attendance: AttendancePresent,
		Password:   "password",
	}
}

func (m *Member) CheckPassword(password string) bool { return m.Password == password }

// SetPassword replaces the password when the old one matches.
func (m *Member) SetPassword(old, new string) bool {
	if m.Password != old {
		return false
	}
	m.Password = new
	return true
}

// ToggleAttendance flips between present and absent.
func (m *Member) ToggleAttendance() {
	if m.Attendance == AttendancePresent {
		m.Attendance = AttendanceAbsent
	} else {
		m.Attendance = AttendancePresent
	}
}

// Staff is any roster member, dispatched on Info().Role.
type Staff interface {
	Info() *Member
}

// Events receives order lifecycle transitions. Implementations must not
// block or fail the operation that raised the event.
type Events interface {
	OrderStatus(order *domain.Order, from, to string)
}

// NopEvents discards transitions.
type NopEvents struct{}

func (NopEvents) OrderStatus(order *domain.Order, from, to string) {}

// RequestReader is the manager's view of the restock request queue.
type RequestReader interface {
	ReadAll() (string, error)
}

// Revenue accumulates the restaurant-wide running total of cleared bills.
type Revenue struct {
	total float64
}

func (r *Revenue) Add(amount float64) { r.total += amount }
func (r *Revenue) Total() float64     { return r.total }
func (r *Revenue) Restore(t float64)  { r.total = t }
