package domain

import "github.com/spec-kit/seatboard/internal/grid"

// Department is an organizational unit anchored on the board.
type Department struct {
	ID          string          `json:"id"`
	Name        string          `json:"dept"`
	DisplayName string          `json:"displayName,omitempty"`
	SubLabel    string          `json:"subDept,omitempty"`
	IsParentOrg bool            `json:"isParentOrg"`
	Members     []string        `json:"members"`
	Location    grid.Coordinate `json:"location"`
}

// Label is the text shown for the department card.
func (d *Department) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// HasMember reports whether the employee ID is listed as a member.
func (d *Department) HasMember(employeeID string) bool {
	for _, id := range d.Members {
		if id == employeeID {
			return true
		}
	}
	return false
}
