package board

import (
	"fmt"
	"strings"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// DefaultSearchRadius bounds the nearest-free-seat search around a department.
const DefaultSearchRadius = 10

// Relocate moves the entity with the given ID to c. An occupied target is
// rejected; nothing is displaced.
func (m *Model) Relocate(id string, c grid.Coordinate) error {
	entity, ok := m.EntityByID(id)
	if !ok {
		return apperrors.NewNotFound("entity", map[string]any{"id": id})
	}
	if err := m.requireFree(c, id); err != nil {
		return err
	}
	if entity.Location() == c {
		return nil
	}
	entity.setLocation(c)
	m.Touch()
	return nil
}

// Swap exchanges the coordinates of two entities. Either both move or neither does.
func (m *Model) Swap(idA, idB string) error {
	if idA == idB {
		return apperrors.NewValidationError("cannot swap an entity with itself", map[string]any{"id": idA})
	}
	a, ok := m.EntityByID(idA)
	if !ok {
		return apperrors.NewNotFound("entity", map[string]any{"id": idA})
	}
	b, ok := m.EntityByID(idB)
	if !ok {
		return apperrors.NewNotFound("entity", map[string]any{"id": idB})
	}
	locA, locB := a.Location(), b.Location()
	if !locA.Valid() || !locB.Valid() {
		return apperrors.NewValidationError("entity has invalid coordinate", nil)
	}
	a.setLocation(locB)
	b.setLocation(locA)
	m.Touch()
	return nil
}

// SwapAt exchanges whatever occupies c1 and c2. Both cells must be occupied.
func (m *Model) SwapAt(c1, c2 grid.Coordinate) error {
	if !c1.Valid() || !c2.Valid() {
		return apperrors.NewValidationError("invalid coordinate", map[string]any{"first": c1.String(), "second": c2.String()})
	}
	a, ok := m.At(c1)
	if !ok {
		return apperrors.NewNotFound("entity", map[string]any{"coordinate": c1.String()})
	}
	b, ok := m.At(c2)
	if !ok {
		return apperrors.NewNotFound("entity", map[string]any{"coordinate": c2.String()})
	}
	return m.Swap(a.ID(), b.ID())
}

// MoveToDepartment seats the employee at the free coordinate nearest the
// department's anchor and moves its membership from any previous department.
func (m *Model) MoveToDepartment(employeeID, departmentName string, maxRadius int) (grid.Coordinate, error) {
	emp, ok := m.EmployeeByID(employeeID)
	if !ok {
		return grid.Coordinate{}, apperrors.NewNotFound("employee", map[string]any{"id": employeeID})
	}
	matches := m.FindDepartments(departmentName)
	if len(matches) == 0 {
		return grid.Coordinate{}, apperrors.NewNotFound("department", map[string]any{"name": departmentName})
	}
	dept := matches[0]
	if maxRadius <= 0 {
		maxRadius = DefaultSearchRadius
	}
	target, ok := grid.NearestFree(dept.Location, m.Occupied(nil), maxRadius)
	if !ok {
		return grid.Coordinate{}, apperrors.NewConflict(fmt.Sprintf("no free seat near %s", dept.Name), map[string]any{
			"department": dept.Name,
			"anchor":     dept.Location.String(),
			"radius":     maxRadius,
		})
	}

	for _, d := range m.board.Departments {
		if d != dept {
			d.Members = removeID(d.Members, emp.ID)
		}
	}
	if !dept.HasMember(emp.ID) {
		dept.Members = append(dept.Members, emp.ID)
	}
	emp.Department = dept.Name
	emp.SubDepartment = dept.SubLabel
	emp.Location = target
	m.Touch()
	return target, nil
}

// NewEmployee describes an employee to add.
type NewEmployee struct {
	Name           string
	Position       string
	EmploymentType domain.EmploymentType
	Department     string
	Location       grid.Coordinate
}

// AddEmployee places a new employee on a free coordinate.
func (m *Model) AddEmployee(in NewEmployee) (*domain.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("employee name required", nil)
	}
	if err := m.requireFree(in.Location, ""); err != nil {
		return nil, err
	}
	empType := in.EmploymentType
	if !empType.Valid() {
		empType = domain.EmploymentRegular
	}
	emp := &domain.Employee{
		ID:             m.newID("emp"),
		Name:           name,
		Position:       strings.TrimSpace(in.Position),
		EmploymentType: empType,
		Department:     in.Department,
		PhotoPosY:      domain.DefaultPhotoPosY,
		Location:       in.Location,
	}
	if in.Department != "" {
		for _, d := range m.board.Departments {
			if d.Name == in.Department {
				d.Members = append(d.Members, emp.ID)
				emp.SubDepartment = d.SubLabel
				break
			}
		}
	}
	m.board.Employees = append(m.board.Employees, emp)
	m.Touch()
	return emp, nil
}

// NewDepartment describes a department to add.
type NewDepartment struct {
	Name        string
	SubLabel    string
	IsParentOrg bool
	Location    grid.Coordinate
}

// AddDepartment anchors a new department on a free coordinate.
func (m *Model) AddDepartment(in NewDepartment) (*domain.Department, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name required", nil)
	}
	if err := m.requireFree(in.Location, ""); err != nil {
		return nil, err
	}
	dept := &domain.Department{
		ID:          m.newID("dept"),
		Name:        name,
		DisplayName: name,
		SubLabel:    strings.TrimSpace(in.SubLabel),
		IsParentOrg: in.IsParentOrg,
		Members:     []string{},
		Location:    in.Location,
	}
	m.board.Departments = append(m.board.Departments, dept)
	m.Touch()
	return dept, nil
}

// RemoveEmployee deletes an employee and drops it from membership lists.
func (m *Model) RemoveEmployee(id string) (*domain.Employee, error) {
	for i, e := range m.board.Employees {
		if e.ID != id {
			continue
		}
		m.board.Employees = append(m.board.Employees[:i:i], m.board.Employees[i+1:]...)
		for _, d := range m.board.Departments {
			d.Members = removeID(d.Members, id)
		}
		m.Touch()
		return e, nil
	}
	return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
}

// RemoveDepartment deletes a department. Employees keep their department label.
func (m *Model) RemoveDepartment(id string) (*domain.Department, error) {
	for i, d := range m.board.Departments {
		if d.ID != id {
			continue
		}
		m.board.Departments = append(m.board.Departments[:i:i], m.board.Departments[i+1:]...)
		m.Touch()
		return d, nil
	}
	return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
}

// DepartmentLabels carries optional relabel values; nil fields are left unchanged.
type DepartmentLabels struct {
	DisplayName *string
	SubLabel    *string
	IsParentOrg *bool
}

// RelabelDepartment changes presentation fields of a department.
func (m *Model) RelabelDepartment(id string, labels DepartmentLabels) (*domain.Department, error) {
	dept, ok := m.DepartmentByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
	}
	if labels.DisplayName != nil {
		dept.DisplayName = strings.TrimSpace(*labels.DisplayName)
	}
	if labels.SubLabel != nil {
		dept.SubLabel = strings.TrimSpace(*labels.SubLabel)
	}
	if labels.IsParentOrg != nil {
		dept.IsParentOrg = *labels.IsParentOrg
	}
	m.Touch()
	return dept, nil
}

// SetPhoto stores the photo handle on the employee; nil clears it.
func (m *Model) SetPhoto(employeeID string, handle *string) error {
	emp, ok := m.EmployeeByID(employeeID)
	if !ok {
		return apperrors.NewNotFound("employee", map[string]any{"id": employeeID})
	}
	emp.Photo = handle
	m.Touch()
	return nil
}

// SetPhotoPosition clamps posY to 0..100 and returns the stored value.
func (m *Model) SetPhotoPosition(employeeID string, posY int) (int, error) {
	emp, ok := m.EmployeeByID(employeeID)
	if !ok {
		return 0, apperrors.NewNotFound("employee", map[string]any{"id": employeeID})
	}
	emp.PhotoPosY = max(0, min(100, posY))
	m.Touch()
	return emp.PhotoPosY, nil
}

// ParentOrg is a department that must always exist at a fixed anchor.
type ParentOrg struct {
	Name   string
	Anchor grid.Coordinate
}

// DefaultParentOrgs are the two top-level organisations of the board.
var DefaultParentOrgs = []ParentOrg{
	{Name: "대학본부", Anchor: grid.Coordinate{Column: 1, Row: 1}},
	{Name: "총장직속기관", Anchor: grid.Coordinate{Column: 21, Row: 1}},
}

// EnsureParentOrgs adds each missing parent organisation at its anchor. A
// foreign occupant of the anchor is shifted to the nearest free coordinate.
// It reports whether the board changed.
func (m *Model) EnsureParentOrgs(orgs []ParentOrg) (bool, error) {
	changed := false
	for _, org := range orgs {
		if m.hasDepartmentNamed(org.Name) {
			continue
		}
		if occupant, taken := m.At(org.Anchor); taken {
			occupied := m.Occupied(nil)
			target, ok := grid.NearestFree(org.Anchor, occupied, DefaultSearchRadius)
			if !ok {
				return changed, apperrors.NewConflict("no free seat to shift anchor occupant", map[string]any{"anchor": org.Anchor.String()})
			}
			occupant.setLocation(target)
		}
		if _, err := m.AddDepartment(NewDepartment{Name: org.Name, IsParentOrg: true, Location: org.Anchor}); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

func (m *Model) hasDepartmentNamed(name string) bool {
	for _, d := range m.board.Departments {
		if d.Name == name {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
