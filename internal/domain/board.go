package domain

import "time"

// Board is the full seating chart: every positioned employee and department.
type Board struct {
	Departments []*Department `json:"departments"`
	Employees   []*Employee   `json:"employees"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// Clone returns a deep copy so snapshots never share entity pointers.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{
		Departments: make([]*Department, 0, len(b.Departments)),
		Employees:   make([]*Employee, 0, len(b.Employees)),
		LastUpdated: b.LastUpdated,
	}
	for _, d := range b.Departments {
		cp := *d
		cp.Members = append([]string(nil), d.Members...)
		out.Departments = append(out.Departments, &cp)
	}
	for _, e := range b.Employees {
		cp := *e
		if e.Photo != nil {
			photo := *e.Photo
			cp.Photo = &photo
		}
		out.Employees = append(out.Employees, &cp)
	}
	return out
}
