package domain

// Role decides what an authenticated caller may do with the board.
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleViewer   Role = "VIEWER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleViewer
}

// Principal is the caller behind a verified token.
type Principal struct {
	Name string
	Role Role
}
