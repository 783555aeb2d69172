package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
)

func TestWriteXLSX(t *testing.T) {
	board := &domain.Board{
		Departments: []*domain.Department{{ID: "dept_1", Name: "교무처", SubLabel: "학사지원팀", Location: grid.MustParse("A1")}},
		Employees: []*domain.Employee{
			{ID: "emp_1", Name: "민수", Position: "주무관", EmploymentType: domain.EmploymentRegular, Department: "교무처", Location: grid.MustParse("C3")},
			{ID: "emp_2", Name: "철수", Location: grid.MustParse("AN13")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, board))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{ChartSheet, RosterSheet}, f.GetSheetList())

	header, err := f.GetCellValue(ChartSheet, "AO1")
	require.NoError(t, err)
	assert.Equal(t, "AN", header)

	cell, err := ChartCell(grid.MustParse("C3"))
	require.NoError(t, err)
	assert.Equal(t, "D4", cell)
	value, err := f.GetCellValue(ChartSheet, cell)
	require.NoError(t, err)
	assert.Equal(t, "민수\n주무관", value)

	value, err = f.GetCellValue(ChartSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "교무처\n학사지원팀", value)

	rows, err := f.GetRows(RosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "이름", rows[0][0])
	assert.Equal(t, []string{"민수", "주무관", "regular", "교무처", "", "C3", "left", "3열 3행"}, rows[1])
	assert.Equal(t, []string{"철수", "", "", "", "", "AN13", "right", "20열 13행"}, rows[2])
}
