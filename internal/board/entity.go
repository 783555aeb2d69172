package board

import (
	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
)

// EntityKind tags which variant an Entity holds.
type EntityKind string

const (
	KindEmployee   EntityKind = "employee"
	KindDepartment EntityKind = "department"
)

// Entity is either an employee or a department; exactly one pointer is set.
type Entity struct {
	Kind       EntityKind
	Employee   *domain.Employee
	Department *domain.Department
}

func employeeEntity(e *domain.Employee) Entity {
	return Entity{Kind: KindEmployee, Employee: e}
}

func departmentEntity(d *domain.Department) Entity {
	return Entity{Kind: KindDepartment, Department: d}
}

// ID returns the identity of the wrapped entity.
func (e Entity) ID() string {
	if e.Kind == KindDepartment {
		return e.Department.ID
	}
	return e.Employee.ID
}

// Label is the operator-facing name of the entity.
func (e Entity) Label() string {
	if e.Kind == KindDepartment {
		return e.Department.Label()
	}
	return e.Employee.Name
}

// Location returns the coordinate the entity occupies.
func (e Entity) Location() grid.Coordinate {
	if e.Kind == KindDepartment {
		return e.Department.Location
	}
	return e.Employee.Location
}

func (e Entity) setLocation(c grid.Coordinate) {
	if e.Kind == KindDepartment {
		e.Department.Location = c
		return
	}
	e.Employee.Location = c
}
