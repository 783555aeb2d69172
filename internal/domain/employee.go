package domain

import "github.com/spec-kit/seatboard/internal/grid"

// EmploymentType tags how an employee is engaged.
type EmploymentType string

const (
	EmploymentRegular    EmploymentType = "regular"
	EmploymentContract   EmploymentType = "contract"
	EmploymentFunctional EmploymentType = "functional"
)

// Valid reports whether t is a known employment type.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentRegular, EmploymentContract, EmploymentFunctional:
		return true
	}
	return false
}

// DefaultPhotoPosY is the vertical crop offset given to new employees.
const DefaultPhotoPosY = 30

// Employee is a staff card positioned on the board.
type Employee struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Position       string          `json:"position"`
	EmploymentType EmploymentType  `json:"empType"`
	Department     string          `json:"dept"`
	SubDepartment  string          `json:"subDept"`
	Photo          *string         `json:"photo"`
	PhotoPosY      int             `json:"photoPosY"`
	Location       grid.Coordinate `json:"location"`
}
