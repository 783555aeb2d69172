package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
)

func sampleBoard() *domain.Board {
	return &domain.Board{
		Departments: []*domain.Department{{ID: "dept_1", Name: "교무처", Members: []string{"emp_1"}, Location: grid.MustParse("E5")}},
		Employees:   []*domain.Employee{{ID: "emp_1", Name: "민수", Department: "교무처", PhotoPosY: 30, Location: grid.MustParse("C3")}},
		LastUpdated: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestFileBoardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFileBoardRepository(filepath.Join(t.TempDir(), "state", "board.json"))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	require.NoError(t, repo.Save(ctx, sampleBoard()))
	require.NoError(t, repo.Save(ctx, sampleBoard()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Employees, 1)
	assert.Equal(t, "C3", loaded.Employees[0].Location.String())
	assert.Equal(t, sampleBoard().LastUpdated, loaded.LastUpdated.UTC())

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestMemoryBoardRepositoryDetaches(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBoardRepository()
	board := sampleBoard()
	require.NoError(t, repo.Save(ctx, board))
	board.Employees[0].Name = "변경"

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "민수", loaded.Employees[0].Name)
}

func TestFileSeedLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.json")
	seed := `{
  "lastUpdated": "2026-01-05 10:00",
  "departments": [{"dept": "교무처", "subDept": "학사지원팀", "location": {"coordinate": "e5"}}],
  "employees": [{"id": "emp_keep", "name": "민수", "position": "주무관", "location": {"coordinate": "C3", "block": "left", "index": 82}}]
}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	n := 0
	loader := NewFileSeedLoader(path, func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	})
	board, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Departments, 1)
	assert.Equal(t, "dept_1", board.Departments[0].ID)
	assert.Equal(t, "E5", board.Departments[0].Location.String())
	assert.NotNil(t, board.Departments[0].Members)
	assert.Equal(t, "emp_keep", board.Employees[0].ID)
	assert.Equal(t, domain.EmploymentRegular, board.Employees[0].EmploymentType)

	_, err = NewFileSeedLoader(filepath.Join(t.TempDir(), "none.json"), nil).Load(context.Background())
	assert.Error(t, err)
}

func TestMemoryScenarioRepository(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryScenarioRepository(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	first, err := repo.Save(ctx, " 1차 배치안 ", "", sampleBoard())
	require.NoError(t, err)
	assert.Equal(t, "1차 배치안", first.Name)
	assert.Regexp(t, `^scenario_`, first.ID)
	_, err = repo.Save(ctx, "1차", "짧은 이름", sampleBoard())
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1차", list[0].Name, "newest first")

	exact, err := repo.FindByName(ctx, "1차")
	require.NoError(t, err)
	assert.Equal(t, "짧은 이름", exact.Description)

	partial, err := repo.FindByName(ctx, "배치")
	require.NoError(t, err)
	assert.Equal(t, first.ID, partial.ID)

	partial.Name = "최종안"
	require.NoError(t, repo.Update(ctx, partial))
	renamed, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "최종안", renamed.Name)
	assert.True(t, renamed.UpdatedAt.After(renamed.CreatedAt))

	deleted, err := repo.DeleteByName(ctx, "최종")
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)
	_, err = repo.FindByName(ctx, "최종")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
	_, err = repo.FindByName(ctx, "")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Scenario{ID: "scenario_x"}), ErrScenarioNotFound)
}

func TestMemoryPhotoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPhotoRepository()
	_, err := repo.Get(ctx, "emp_1")
	assert.ErrorIs(t, err, ErrPhotoNotFound)

	require.NoError(t, repo.Put(ctx, "emp_1", []byte{1, 2, 3}))
	data, err := repo.Get(ctx, "emp_1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	require.NoError(t, repo.Delete(ctx, "emp_1"))
	_, err = repo.Get(ctx, "emp_1")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}
