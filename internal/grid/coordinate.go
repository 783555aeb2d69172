package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Grid dimensions. Columns 1..20 form the left block, 21..40 the right block.
const (
	Columns     = 40
	Rows        = 13
	LeftColumns = 20
	Cells       = Columns * Rows
)

// Block is one of the two fixed halves of the grid.
type Block string

const (
	BlockLeft  Block = "left"
	BlockRight Block = "right"
)

// Coordinate addresses one grid cell. Both fields are 1-based.
// The zero value is not a valid coordinate.
type Coordinate struct {
	Column int
	Row    int
}

var coordinatePattern = regexp.MustCompile(`^([A-Z]{1,2})(1[0-3]|[1-9])$`)

// New builds a coordinate from a column and row, rejecting anything off the grid.
func New(column, row int) (Coordinate, bool) {
	if column < 1 || column > Columns || row < 1 || row > Rows {
		return Coordinate{}, false
	}
	return Coordinate{Column: column, Row: row}, true
}

// ColumnToLetters renders a column as A..Z for 1..26 and AA..AN for 27..40.
func ColumnToLetters(column int) (string, bool) {
	switch {
	case column >= 1 && column <= 26:
		return string(rune('A' + column - 1)), true
	case column > 26 && column <= Columns:
		return "A" + string(rune('A'+column-27)), true
	default:
		return "", false
	}
}

// LettersToColumn is the inverse of ColumnToLetters. Matching is case-insensitive.
func LettersToColumn(letters string) (int, bool) {
	upper := strings.ToUpper(letters)
	switch len(upper) {
	case 1:
		if upper[0] < 'A' || upper[0] > 'Z' {
			return 0, false
		}
		return int(upper[0]-'A') + 1, true
	case 2:
		if upper[0] != 'A' || upper[1] < 'A' || upper[1] > 'N' {
			return 0, false
		}
		return int(upper[1]-'A') + 27, true
	default:
		return 0, false
	}
}

// Parse decodes "<letters><row>" such as "c5" or "AA13".
func Parse(text string) (Coordinate, bool) {
	m := coordinatePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(text)))
	if m == nil {
		return Coordinate{}, false
	}
	column, ok := LettersToColumn(m[1])
	if !ok {
		return Coordinate{}, false
	}
	row, err := strconv.Atoi(m[2])
	if err != nil {
		return Coordinate{}, false
	}
	return New(column, row)
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Coordinate {
	c, ok := Parse(text)
	if !ok {
		panic(fmt.Sprintf("grid: invalid coordinate %q", text))
	}
	return c
}

// FromIndex maps a linear index 0..519 back to its coordinate.
func FromIndex(index int) (Coordinate, bool) {
	if index < 0 || index >= Cells {
		return Coordinate{}, false
	}
	return Coordinate{Column: index%Columns + 1, Row: index/Columns + 1}, true
}

// Valid reports whether c lies on the grid.
func (c Coordinate) Valid() bool {
	_, ok := New(c.Column, c.Row)
	return ok
}

// Index returns (row-1)*40 + (column-1), or -1 for an invalid coordinate.
func (c Coordinate) Index() int {
	if !c.Valid() {
		return -1
	}
	return (c.Row-1)*Columns + (c.Column - 1)
}

// Block is always recomputed from the column.
func (c Coordinate) Block() Block {
	return BlockOf(c)
}

// BlockOf classifies a coordinate: columns up to 20 are left, the rest right.
func BlockOf(c Coordinate) Block {
	if c.Column <= LeftColumns {
		return BlockLeft
	}
	return BlockRight
}

func (c Coordinate) String() string {
	letters, ok := ColumnToLetters(c.Column)
	if !ok || c.Row < 1 || c.Row > Rows {
		return ""
	}
	return letters + strconv.Itoa(c.Row)
}

// Local returns the coordinate relative to its own block.
func (c Coordinate) Local() (column, row, index int) {
	column = c.Column - 1
	if c.Block() == BlockRight {
		column -= LeftColumns
	}
	row = c.Row - 1
	return column, row, row*LeftColumns + column
}

// Distance returns the column and row offsets between a and b and their euclidean distance.
func Distance(a, b Coordinate) (dx, dy int, d float64) {
	dx = absInt(b.Column - a.Column)
	dy = absInt(b.Row - a.Row)
	return dx, dy, math.Sqrt(float64(dx*dx + dy*dy))
}

type locationJSON struct {
	Coordinate string `json:"coordinate"`
	Block      Block  `json:"block,omitempty"`
	Index      int    `json:"index"`
}

// MarshalJSON writes the coordinate with its derived block and index.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(locationJSON{Coordinate: c.String(), Block: c.Block(), Index: c.Index()})
}

// UnmarshalJSON reads only the coordinate string; block and index are recomputed.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Coordinate{}
		return nil
	}
	var loc locationJSON
	if err := json.Unmarshal(data, &loc); err != nil {
		return err
	}
	parsed, ok := Parse(loc.Coordinate)
	if !ok {
		return fmt.Errorf("grid: invalid coordinate %q", loc.Coordinate)
	}
	*c = parsed
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
