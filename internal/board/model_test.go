package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%08d", prefix, n)
	}
}

func fixtureBoard() *domain.Board {
	return &domain.Board{
		Departments: []*domain.Department{
			{ID: "dept_1", Name: "교무처", SubLabel: "학사지원팀", Members: []string{"emp_2"}, Location: grid.MustParse("E5")},
			{ID: "dept_2", Name: "기획처", Members: []string{"emp_1"}, Location: grid.MustParse("V2")},
		},
		Employees: []*domain.Employee{
			{ID: "emp_1", Name: "민수", Department: "기획처", Location: grid.MustParse("C3")},
			{ID: "emp_2", Name: "철수", Department: "교무처", Location: grid.MustParse("D4")},
			{ID: "emp_3", Name: "김민수", Location: grid.MustParse("F6")},
		},
	}
}

func newFixture(t *testing.T) *Model {
	t.Helper()
	m, err := Load(fixtureBoard(), WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return m
}

func assertUniqueOccupancy(t *testing.T, m *Model) {
	t.Helper()
	require.NoError(t, Validate(m.Snapshot()))
}

func TestNewIDFormat(t *testing.T) {
	id := NewID("emp")
	assert.Regexp(t, `^emp_[0-9a-f]{8}$`, id)
	assert.NotEqual(t, id, NewID("emp"))
}

func TestValidateRejectsDoubleOccupancy(t *testing.T) {
	b := fixtureBoard()
	b.Employees[1].Location = grid.MustParse("C3")
	err := Validate(b)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	b = fixtureBoard()
	b.Employees[2].ID = "emp_1"
	assert.True(t, apperrors.HasCode(Validate(b), apperrors.CodeValidation))
}

func TestLookups(t *testing.T) {
	m := newFixture(t)

	matches := m.FindEmployees("민수")
	require.Len(t, matches, 2)
	assert.Equal(t, "emp_1", matches[0].ID)

	emp, ok := m.ResolveEmployee("민수")
	require.True(t, ok)
	assert.Equal(t, "emp_1", emp.ID)

	emp, ok = m.ResolveEmployee("김민")
	require.True(t, ok)
	assert.Equal(t, "emp_3", emp.ID)

	dept, ok := m.ResolveDepartment("학사지원")
	require.True(t, ok)
	assert.Equal(t, "dept_1", dept.ID)

	entity, ok := m.At(grid.MustParse("E5"))
	require.True(t, ok)
	assert.Equal(t, KindDepartment, entity.Kind)
	assert.Equal(t, "교무처", entity.Label())

	_, ok = m.At(grid.MustParse("A13"))
	assert.False(t, ok)

	left := grid.BlockLeft
	assert.Len(t, m.Occupied(&left), 4)
	assert.Len(t, m.Occupied(nil), 5)
}

func TestRelocate(t *testing.T) {
	m := newFixture(t)

	require.NoError(t, m.Relocate("emp_1", grid.MustParse("A1")))
	emp, _ := m.EmployeeByID("emp_1")
	assert.Equal(t, "A1", emp.Location.String())
	assert.Equal(t, fixedNow, m.LastUpdated())

	err := m.Relocate("emp_1", grid.MustParse("D4"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Equal(t, "A1", emp.Location.String())

	require.NoError(t, m.Relocate("emp_1", grid.MustParse("A1")))

	err = m.Relocate("emp_404", grid.MustParse("A2"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	err = m.Relocate("emp_1", grid.Coordinate{Column: 41, Row: 1})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assertUniqueOccupancy(t, m)
}

func TestSwapIsAtomic(t *testing.T) {
	m := newFixture(t)

	require.NoError(t, m.Swap("emp_1", "emp_2"))
	a, _ := m.EmployeeByID("emp_1")
	b, _ := m.EmployeeByID("emp_2")
	assert.Equal(t, "D4", a.Location.String())
	assert.Equal(t, "C3", b.Location.String())

	err := m.Swap("emp_1", "emp_404")
	require.Error(t, err)
	assert.Equal(t, "D4", a.Location.String())

	assert.True(t, apperrors.HasCode(m.Swap("emp_1", "emp_1"), apperrors.CodeValidation))
	assertUniqueOccupancy(t, m)
}

func TestSwapAt(t *testing.T) {
	m := newFixture(t)

	require.NoError(t, m.SwapAt(grid.MustParse("C3"), grid.MustParse("E5")))
	dept, _ := m.DepartmentByID("dept_1")
	assert.Equal(t, "C3", dept.Location.String())

	err := m.SwapAt(grid.MustParse("C3"), grid.MustParse("A13"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assertUniqueOccupancy(t, m)
}

func TestMoveToDepartmentTakesNearestFreeSeat(t *testing.T) {
	m := newFixture(t)

	target, err := m.MoveToDepartment("emp_1", "교무처", 0)
	require.NoError(t, err)
	assert.Equal(t, "D5", target.String())

	emp, _ := m.EmployeeByID("emp_1")
	assert.Equal(t, "교무처", emp.Department)
	assert.Equal(t, "학사지원팀", emp.SubDepartment)

	gyomu, _ := m.DepartmentByID("dept_1")
	gihoek, _ := m.DepartmentByID("dept_2")
	assert.Contains(t, gyomu.Members, "emp_1")
	assert.NotContains(t, gihoek.Members, "emp_1")
	assertUniqueOccupancy(t, m)

	_, err = m.MoveToDepartment("emp_1", "없는부서", 0)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestMoveToDepartmentExhausted(t *testing.T) {
	m := New(&domain.Board{
		Departments: []*domain.Department{{ID: "dept_1", Name: "교무처", Location: grid.MustParse("A1")}},
		Employees: []*domain.Employee{
			{ID: "emp_1", Name: "가", Location: grid.MustParse("B1")},
			{ID: "emp_2", Name: "나", Location: grid.MustParse("A2")},
			{ID: "emp_3", Name: "다", Location: grid.MustParse("B2")},
			{ID: "emp_4", Name: "라", Location: grid.MustParse("J9")},
		},
	})
	_, err := m.MoveToDepartment("emp_4", "교무처", 1)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	emp, _ := m.EmployeeByID("emp_4")
	assert.Equal(t, "J9", emp.Location.String())
}

func TestAddAndRemove(t *testing.T) {
	m := newFixture(t)

	_, err := m.AddEmployee(NewEmployee{Name: "영희", Location: grid.MustParse("C3")})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	emp, err := m.AddEmployee(NewEmployee{Name: " 영희 ", Position: "주무관", Department: "교무처", Location: grid.MustParse("A5")})
	require.NoError(t, err)
	assert.Equal(t, "emp_00000001", emp.ID)
	assert.Equal(t, "영희", emp.Name)
	assert.Equal(t, domain.EmploymentRegular, emp.EmploymentType)
	assert.Equal(t, domain.DefaultPhotoPosY, emp.PhotoPosY)
	dept, _ := m.DepartmentByID("dept_1")
	assert.Contains(t, dept.Members, emp.ID)

	added, err := m.AddDepartment(NewDepartment{Name: "대학본부", Location: grid.MustParse("A1")})
	require.NoError(t, err)
	assert.Equal(t, "dept_00000002", added.ID)

	removed, err := m.RemoveEmployee("emp_2")
	require.NoError(t, err)
	assert.Equal(t, "철수", removed.Name)
	assert.NotContains(t, dept.Members, "emp_2")
	_, ok := m.At(grid.MustParse("D4"))
	assert.False(t, ok)

	_, err = m.RemoveDepartment("dept_2")
	require.NoError(t, err)
	assert.Len(t, m.Departments(), 2)

	_, err = m.RemoveEmployee("emp_2")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assertUniqueOccupancy(t, m)
}

func TestPhotoAndLabels(t *testing.T) {
	m := newFixture(t)

	handle := "photo://emp_1"
	require.NoError(t, m.SetPhoto("emp_1", &handle))
	emp, _ := m.EmployeeByID("emp_1")
	require.NotNil(t, emp.Photo)
	assert.Equal(t, handle, *emp.Photo)

	pos, err := m.SetPhotoPosition("emp_1", 140)
	require.NoError(t, err)
	assert.Equal(t, 100, pos)
	pos, _ = m.SetPhotoPosition("emp_1", -3)
	assert.Equal(t, 0, pos)

	display := "교무처(본관)"
	dept, err := m.RelabelDepartment("dept_1", DepartmentLabels{DisplayName: &display})
	require.NoError(t, err)
	assert.Equal(t, "교무처(본관)", dept.Label())
	assert.Equal(t, "학사지원팀", dept.SubLabel)
}

func TestEnsureParentOrgs(t *testing.T) {
	b := fixtureBoard()
	b.Employees = append(b.Employees, &domain.Employee{ID: "emp_9", Name: "박지원", Location: grid.MustParse("A1")})
	m, err := Load(b, WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	changed, err := m.EnsureParentOrgs(DefaultParentOrgs)
	require.NoError(t, err)
	assert.True(t, changed)

	hq, ok := m.At(grid.MustParse("A1"))
	require.True(t, ok)
	assert.Equal(t, "대학본부", hq.Label())
	assert.True(t, hq.Department.IsParentOrg)

	direct, ok := m.At(grid.MustParse("U1"))
	require.True(t, ok)
	assert.Equal(t, "총장직속기관", direct.Label())

	shifted, _ := m.EmployeeByID("emp_9")
	assert.Equal(t, "A2", shifted.Location.String())
	assertUniqueOccupancy(t, m)

	changed, err = m.EnsureParentOrgs(DefaultParentOrgs)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSnapshotIsDetached(t *testing.T) {
	m := newFixture(t)
	snap := m.Snapshot()
	snap.Employees[0].Name = "변경"
	emp, _ := m.EmployeeByID("emp_1")
	assert.Equal(t, "민수", emp.Name)
}
