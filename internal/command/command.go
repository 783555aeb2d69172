// Package command turns a free-text operator line into a typed Command.
//
// Command is a closed set: every variant lives in this package and carries
// exactly the fields its execution needs. Callers switch on the concrete type.
package command

import "github.com/spec-kit/seatboard/internal/grid"

// Kind is the stable tag of a Command variant, used in logs, metrics and JSON.
type Kind string

const (
	KindMoveToDepartment Kind = "move_to_department"
	KindMoveToCoordinate Kind = "move_to_coordinate"
	KindMoveCoordinate   Kind = "move_coordinate"
	KindSwapNames        Kind = "swap_names"
	KindSwapCoordinates  Kind = "swap_coordinates"
	KindReset            Kind = "reset"
	KindPersist          Kind = "persist"
	KindHelp             Kind = "help"
	KindCreateDepartment Kind = "create_department"
	KindDeleteDepartment Kind = "delete_department"
	KindCreateEmployee   Kind = "create_employee"
	KindDeleteEmployee   Kind = "delete_employee"
	KindScenarioSave     Kind = "scenario_save"
	KindScenarioLoad     Kind = "scenario_load"
	KindScenarioDelete   Kind = "scenario_delete"
	KindScenarioList     Kind = "scenario_list"
	KindUnrecognized     Kind = "unrecognized"
)

// Command is one parsed operator intent.
type Command interface {
	Kind() Kind
	// Input is the normalised text the command was parsed from.
	Input() string
	sealed()
}

type source struct {
	Text string `json:"input"`
}

func (s source) Input() string { return s.Text }
func (source) sealed()         {}

// MoveToDepartment seats the named employee next to a department.
type MoveToDepartment struct {
	source
	Name       string `json:"name"`
	Department string `json:"department"`
}

// MoveToCoordinate moves the named employee to a cell.
type MoveToCoordinate struct {
	source
	Name       string          `json:"name"`
	Coordinate grid.Coordinate `json:"coordinate"`
}

// MoveCoordinate moves whatever occupies From to To.
type MoveCoordinate struct {
	source
	From grid.Coordinate `json:"from"`
	To   grid.Coordinate `json:"to"`
}

// SwapNames exchanges the seats of two employees. Guessed marks the
// low-confidence reading of two names without a swap keyword.
type SwapNames struct {
	source
	First   string `json:"first"`
	Second  string `json:"second"`
	Guessed bool   `json:"guessed"`
}

// SwapCoordinates exchanges the occupants of two cells.
type SwapCoordinates struct {
	source
	First  grid.Coordinate `json:"first"`
	Second grid.Coordinate `json:"second"`
}

// Reset restores the seed board.
type Reset struct{ source }

// Persist saves the live board.
type Persist struct{ source }

// Help asks for the usage summary.
type Help struct{ source }

// CreateDepartment anchors a new department at a cell.
type CreateDepartment struct {
	source
	Name       string          `json:"name"`
	Coordinate grid.Coordinate `json:"coordinate"`
}

// DeleteDepartment removes a department by name.
type DeleteDepartment struct {
	source
	Name string `json:"name"`
}

// CreateEmployee places a new employee at a cell.
type CreateEmployee struct {
	source
	Name       string          `json:"name"`
	Position   string          `json:"position,omitempty"`
	Coordinate grid.Coordinate `json:"coordinate"`
}

// DeleteEmployee removes an employee by name.
type DeleteEmployee struct {
	source
	Name string `json:"name"`
}

// ScenarioSave snapshots the board. An empty Name means none was given.
type ScenarioSave struct {
	source
	Name string `json:"name,omitempty"`
}

// ScenarioLoad replaces the board with a stored snapshot.
type ScenarioLoad struct {
	source
	Name string `json:"name,omitempty"`
}

// ScenarioDelete removes a stored snapshot.
type ScenarioDelete struct {
	source
	Name string `json:"name,omitempty"`
}

// ScenarioList lists stored snapshots.
type ScenarioList struct{ source }

// Unrecognized carries whatever evidence was extracted, for diagnostics.
type Unrecognized struct {
	source
	Names       []string          `json:"names"`
	Coordinates []grid.Coordinate `json:"coordinates"`
	Departments []string          `json:"departments"`
}

func (MoveToDepartment) Kind() Kind { return KindMoveToDepartment }
func (MoveToCoordinate) Kind() Kind { return KindMoveToCoordinate }
func (MoveCoordinate) Kind() Kind   { return KindMoveCoordinate }
func (SwapNames) Kind() Kind        { return KindSwapNames }
func (SwapCoordinates) Kind() Kind  { return KindSwapCoordinates }
func (Reset) Kind() Kind            { return KindReset }
func (Persist) Kind() Kind          { return KindPersist }
func (Help) Kind() Kind             { return KindHelp }
func (CreateDepartment) Kind() Kind { return KindCreateDepartment }
func (DeleteDepartment) Kind() Kind { return KindDeleteDepartment }
func (CreateEmployee) Kind() Kind   { return KindCreateEmployee }
func (DeleteEmployee) Kind() Kind   { return KindDeleteEmployee }
func (ScenarioSave) Kind() Kind     { return KindScenarioSave }
func (ScenarioLoad) Kind() Kind     { return KindScenarioLoad }
func (ScenarioDelete) Kind() Kind   { return KindScenarioDelete }
func (ScenarioList) Kind() Kind     { return KindScenarioList }
func (Unrecognized) Kind() Kind     { return KindUnrecognized }
