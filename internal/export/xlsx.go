// Package export renders the board as an .xlsx seating chart.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
)

const (
	ChartSheet  = "좌석배치"
	RosterSheet = "직원목록"
)

var rosterHeader = []any{"이름", "직위", "고용형태", "부서", "하위부서", "좌표", "블록", "블록 내 위치"}

// WriteXLSX writes the workbook for b to w.
func WriteXLSX(w io.Writer, b *domain.Board) error {
	f, err := Workbook(b)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

// Workbook builds a two-sheet workbook: the grid as laid out on the board and
// a flat roster of employees.
func Workbook(b *domain.Board) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ChartSheet); err != nil {
		return nil, err
	}
	if err := writeChart(f, b); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write chart: %w", err)
	}
	if err := writeRoster(f, b); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write roster: %w", err)
	}
	return f, nil
}

// ChartCell is the worksheet cell that shows coordinate c. Row 1 and column A hold headers.
func ChartCell(c grid.Coordinate) (string, error) {
	return excelize.CoordinatesToCellName(c.Column+1, c.Row+1)
}

func writeChart(f *excelize.File, b *domain.Board) error {
	for col := 1; col <= grid.Columns; col++ {
		letters, _ := grid.ColumnToLetters(col)
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ChartSheet, cell, letters); err != nil {
			return err
		}
	}
	for row := 1; row <= grid.Rows; row++ {
		cell, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ChartSheet, cell, row); err != nil {
			return err
		}
	}

	left, err := f.NewStyle(cardStyle("DCE8F8"))
	if err != nil {
		return err
	}
	right, err := f.NewStyle(cardStyle("DDF2DF"))
	if err != nil {
		return err
	}
	dept, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F4D35E"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}

	for _, d := range b.Departments {
		cell, err := ChartCell(d.Location)
		if err != nil {
			return err
		}
		label := d.Label()
		if d.SubLabel != "" {
			label += "\n" + d.SubLabel
		}
		if err := f.SetCellValue(ChartSheet, cell, label); err != nil {
			return err
		}
		if err := f.SetCellStyle(ChartSheet, cell, cell, dept); err != nil {
			return err
		}
	}
	for _, e := range b.Employees {
		cell, err := ChartCell(e.Location)
		if err != nil {
			return err
		}
		label := e.Name
		if e.Position != "" {
			label += "\n" + e.Position
		}
		if err := f.SetCellValue(ChartSheet, cell, label); err != nil {
			return err
		}
		style := left
		if e.Location.Block() == grid.BlockRight {
			style = right
		}
		if err := f.SetCellStyle(ChartSheet, cell, cell, style); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(grid.Columns + 1)
	if err := f.SetColWidth(ChartSheet, "B", lastCol, 11); err != nil {
		return err
	}
	return f.SetPanes(ChartSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func writeRoster(f *excelize.File, b *domain.Board) error {
	if _, err := f.NewSheet(RosterSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(RosterSheet, "A1", &rosterHeader); err != nil {
		return err
	}
	for i, e := range b.Employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Name, e.Position, string(e.EmploymentType), e.Department, e.SubDepartment, e.Location.String(), string(e.Location.Block()), localPosition(e.Location)}
		if err := f.SetSheetRow(RosterSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.AutoFilter(RosterSheet, fmt.Sprintf("A1:H%d", len(b.Employees)+1), nil)
}

// localPosition renders the 1-based column and row within the coordinate's block.
func localPosition(c grid.Coordinate) string {
	if !c.Valid() {
		return ""
	}
	col, row, _ := c.Local()
	return fmt.Sprintf("%d열 %d행", col+1, row+1)
}

func cardStyle(fill string) *excelize.Style {
	return &excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "999999", Style: 1},
			{Type: "right", Color: "999999", Style: 1},
			{Type: "top", Color: "999999", Style: 1},
			{Type: "bottom", Color: "999999", Style: 1},
		},
	}
}
