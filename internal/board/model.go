// Package board holds the live seating chart and enforces its central rule:
// at most one entity occupies any coordinate. Every mutation validates first
// and commits last, so a rejected call leaves the board untouched.
package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// Model wraps a domain.Board with lookup and mutation primitives.
// It is not safe for concurrent use; callers serialise access.
type Model struct {
	board *domain.Board
	now   func() time.Time
	newID func(prefix string) string
}

// Option customises a Model.
type Option func(*Model)

// WithClock overrides the clock used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(m *Model) { m.newID = fn }
}

// NewID returns "<prefix>_<8 hex chars>".
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// New wraps b without validating it. A nil board yields an empty model.
func New(b *domain.Board, opts ...Option) *Model {
	if b == nil {
		b = &domain.Board{}
	}
	m := &Model{board: b, now: time.Now, newID: NewID}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load validates b and wraps it.
func Load(b *domain.Board, opts ...Option) (*Model, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

// Validate checks that every entity has a valid, unique coordinate and a unique ID.
func Validate(b *domain.Board) error {
	if b == nil {
		return apperrors.NewValidationError("board is empty", nil)
	}
	seenIDs := make(map[string]struct{})
	occupied := make(map[grid.Coordinate]string)
	check := func(id, label string, loc grid.Coordinate) error {
		if id == "" {
			return apperrors.NewValidationError("entity without id", map[string]any{"label": label})
		}
		if _, dup := seenIDs[id]; dup {
			return apperrors.NewValidationError("duplicate entity id", map[string]any{"id": id})
		}
		seenIDs[id] = struct{}{}
		if !loc.Valid() {
			return apperrors.NewValidationError("entity has invalid coordinate", map[string]any{"id": id, "label": label})
		}
		if other, taken := occupied[loc]; taken {
			return apperrors.NewConflict("coordinate occupied twice", map[string]any{
				"coordinate": loc.String(),
				"first":      other,
				"second":     label,
			})
		}
		occupied[loc] = label
		return nil
	}
	for _, d := range b.Departments {
		if err := check(d.ID, d.Name, d.Location); err != nil {
			return err
		}
	}
	for _, e := range b.Employees {
		if err := check(e.ID, e.Name, e.Location); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a deep copy of the board.
func (m *Model) Snapshot() *domain.Board {
	return m.board.Clone()
}

// LastUpdated is the time of the last committed mutation.
func (m *Model) LastUpdated() time.Time {
	return m.board.LastUpdated
}

// Touch stamps the board as modified now.
func (m *Model) Touch() {
	m.board.LastUpdated = m.now()
}

// Employees returns the employees in insertion order.
func (m *Model) Employees() []*domain.Employee {
	return append([]*domain.Employee(nil), m.board.Employees...)
}

// Departments returns the departments in insertion order.
func (m *Model) Departments() []*domain.Department {
	return append([]*domain.Department(nil), m.board.Departments...)
}

// EmployeeNames lists employee names in insertion order.
func (m *Model) EmployeeNames() []string {
	names := make([]string, 0, len(m.board.Employees))
	for _, e := range m.board.Employees {
		names = append(names, e.Name)
	}
	return names
}

// EmployeeByID looks an employee up by identity.
func (m *Model) EmployeeByID(id string) (*domain.Employee, bool) {
	for _, e := range m.board.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// DepartmentByID looks a department up by identity.
func (m *Model) DepartmentByID(id string) (*domain.Department, bool) {
	for _, d := range m.board.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// EntityByID finds an employee or department by identity.
func (m *Model) EntityByID(id string) (Entity, bool) {
	if e, ok := m.EmployeeByID(id); ok {
		return employeeEntity(e), true
	}
	if d, ok := m.DepartmentByID(id); ok {
		return departmentEntity(d), true
	}
	return Entity{}, false
}

// At returns the entity at c. Employees are checked before departments.
func (m *Model) At(c grid.Coordinate) (Entity, bool) {
	if !c.Valid() {
		return Entity{}, false
	}
	for _, e := range m.board.Employees {
		if e.Location == c {
			return employeeEntity(e), true
		}
	}
	for _, d := range m.board.Departments {
		if d.Location == c {
			return departmentEntity(d), true
		}
	}
	return Entity{}, false
}

// FindEmployees returns every employee whose name contains name, case-insensitively,
// in insertion order.
func (m *Model) FindEmployees(name string) []*domain.Employee {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var out []*domain.Employee
	for _, e := range m.board.Employees {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// ResolveEmployee prefers an exact name match and falls back to the first partial match.
func (m *Model) ResolveEmployee(name string) (*domain.Employee, bool) {
	matches := m.FindEmployees(name)
	if len(matches) == 0 {
		return nil, false
	}
	trimmed := strings.TrimSpace(name)
	for _, e := range matches {
		if e.Name == trimmed {
			return e, true
		}
	}
	return matches[0], true
}

// FindDepartments returns departments whose name or sub-label contains name.
func (m *Model) FindDepartments(name string) []*domain.Department {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var out []*domain.Department
	for _, d := range m.board.Departments {
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			(d.SubLabel != "" && strings.Contains(strings.ToLower(d.SubLabel), needle)) {
			out = append(out, d)
		}
	}
	return out
}

// ResolveDepartment prefers an exact name or display-name match, then the first partial match.
func (m *Model) ResolveDepartment(name string) (*domain.Department, bool) {
	trimmed := strings.TrimSpace(name)
	for _, d := range m.board.Departments {
		if d.Name == trimmed || (d.DisplayName != "" && d.DisplayName == trimmed) {
			return d, true
		}
	}
	matches := m.FindDepartments(name)
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// Occupied returns the occupied coordinates, restricted to block when it is non-nil.
func (m *Model) Occupied(block *grid.Block) grid.Set {
	set := grid.NewSet()
	add := func(c grid.Coordinate) {
		if block == nil || c.Block() == *block {
			set.Add(c)
		}
	}
	for _, d := range m.board.Departments {
		add(d.Location)
	}
	for _, e := range m.board.Employees {
		add(e.Location)
	}
	return set
}

func (m *Model) requireFree(c grid.Coordinate, mover string) error {
	if !c.Valid() {
		return apperrors.NewValidationError("invalid coordinate", map[string]any{"coordinate": c.String()})
	}
	if occupant, taken := m.At(c); taken && occupant.ID() != mover {
		return apperrors.NewConflict(fmt.Sprintf("%s is occupied by %s", c, occupant.Label()), map[string]any{
			"coordinate":   c.String(),
			"occupant":     occupant.Label(),
			"occupantId":   occupant.ID(),
			"occupantKind": string(occupant.Kind),
		})
	}
	return nil
}
