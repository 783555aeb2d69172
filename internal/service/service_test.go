package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/command"
	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/grid"
	"github.com/spec-kit/seatboard/internal/photo"
	"github.com/spec-kit/seatboard/internal/repository"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

var fixedNow = time.Date(2026, 3, 2, 9, 5, 0, 0, time.Local)

func fixtureBoard() *domain.Board {
	return &domain.Board{
		Departments: []*domain.Department{
			{ID: "dept_hq", Name: "대학본부", IsParentOrg: true, Members: []string{}, Location: grid.MustParse("A1")},
			{ID: "dept_pres", Name: "총장직속기관", IsParentOrg: true, Members: []string{}, Location: grid.MustParse("U1")},
			{ID: "dept_1", Name: "교무처", SubLabel: "학사지원팀", Members: []string{"emp_1", "emp_2"}, Location: grid.MustParse("E5")},
			{ID: "dept_2", Name: "기획처", Members: []string{"emp_3"}, Location: grid.MustParse("V2")},
		},
		Employees: []*domain.Employee{
			{ID: "emp_1", Name: "홍길동", Position: "팀장", EmploymentType: domain.EmploymentRegular, Department: "교무처", SubDepartment: "학사지원팀", PhotoPosY: 30, Location: grid.MustParse("C3")},
			{ID: "emp_2", Name: "김철수", Position: "주무관", EmploymentType: domain.EmploymentContract, Department: "교무처", SubDepartment: "학사지원팀", PhotoPosY: 30, Location: grid.MustParse("D4")},
			{ID: "emp_3", Name: "이영희", Position: "주무관", EmploymentType: domain.EmploymentRegular, Department: "기획처", PhotoPosY: 30, Location: grid.MustParse("W3")},
		},
	}
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
	counts map[string][2]int
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) RecordCommand(kind string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.counts[kind]
	c[0]++
	if !success {
		c[1]++
	}
	r.counts[kind] = c
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type harness struct {
	ctx       context.Context
	store     repository.BoardRepository
	boards    *BoardService
	scenarios *ScenarioService
	photos    *PhotoService
	commands  *CommandService
	rec       *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, repository.NewMemoryBoardRepository())
}

func newHarnessWithStore(t *testing.T, store repository.BoardRepository) *harness {
	t.Helper()
	seq := 0
	ids := func(prefix string) string {
		seq++
		return fmt.Sprintf("%s_%08d", prefix, seq)
	}
	clock := func() time.Time { return fixedNow }

	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{counts: map[string][2]int{}}
	for _, et := range []events.EventType{
		events.EventBoardChanged, events.EventBoardReset, events.EventScenarioSaved,
		events.EventScenarioLoaded, events.EventScenarioDeleted, events.EventPhotoUpdated,
	} {
		dispatcher.Subscribe(et, rec.handle)
	}

	NewPersisterService(dispatcher, store, nil).RegisterHandlers()

	boards := NewBoardService(BoardDependencies{
		Store:        store,
		Seed:         repository.NewStaticSeedLoader(fixtureBoard()),
		Dispatcher:   dispatcher,
		ModelOptions: []board.Option{board.WithClock(clock), board.WithIDGenerator(ids)},
	})
	h := &harness{ctx: WithActor(context.Background(), "tester"), store: store, boards: boards, rec: rec}
	require.NoError(t, boards.Init(h.ctx))

	h.scenarios = NewScenarioService(ScenarioDependencies{
		Repo:       repository.NewMemoryScenarioRepository(clock),
		Boards:     boards,
		Dispatcher: dispatcher,
		Clock:      clock,
	})
	h.photos = NewPhotoService(PhotoDependencies{
		Repo:       repository.NewMemoryPhotoRepository(),
		Boards:     boards,
		Normalizer: photo.NewNormalizer(200, 300, 85),
		Dispatcher: dispatcher,
	})
	h.commands = NewCommandService(CommandDependencies{
		Boards:    boards,
		Scenarios: h.scenarios,
		Metrics:   rec,
	})
	return h
}

func (h *harness) location(t *testing.T, id string) string {
	t.Helper()
	var loc string
	h.boards.View(func(m *board.Model) {
		e, ok := m.EntityByID(id)
		require.True(t, ok, "entity %s", id)
		loc = e.Location().String()
	})
	return loc
}

func (h *harness) storedLocation(t *testing.T, id string) string {
	t.Helper()
	stored, err := h.store.Load(h.ctx)
	require.NoError(t, err)
	for _, e := range stored.Employees {
		if e.ID == id {
			return e.Location.String()
		}
	}
	t.Fatalf("employee %s not stored", id)
	return ""
}

func TestInitKeepsSeededParentOrgs(t *testing.T) {
	h := newHarness(t)
	_, err := h.store.Load(h.ctx)
	assert.ErrorIs(t, err, repository.ErrBoardNotFound, "nothing to persist when parent orgs already exist")
	assert.Equal(t, "C3", h.location(t, "emp_1"))
}

func TestInitFallsBackToSeedWhenStoredBoardInvalid(t *testing.T) {
	store := repository.NewMemoryBoardRepository()
	bad := fixtureBoard()
	bad.Employees[1].Location = bad.Employees[0].Location
	require.NoError(t, store.Save(context.Background(), bad))

	boards := NewBoardService(BoardDependencies{Store: store, Seed: repository.NewStaticSeedLoader(fixtureBoard())})
	require.NoError(t, boards.Init(context.Background()))
	snap := boards.Snapshot()
	assert.Equal(t, "D4", snap.Employees[1].Location.String())
}

func TestInitAddsMissingParentOrgs(t *testing.T) {
	seed := fixtureBoard()
	seed.Departments = seed.Departments[2:]
	store := repository.NewMemoryBoardRepository()
	boards := NewBoardService(BoardDependencies{Store: store, Seed: repository.NewStaticSeedLoader(seed)})
	require.NoError(t, boards.Init(context.Background()))

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	names := []string{}
	for _, d := range stored.Departments {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "대학본부")
	assert.Contains(t, names, "총장직속기관")
}

func TestUpdateRollsBackOnError(t *testing.T) {
	h := newHarness(t)
	err := h.boards.Update(h.ctx, "test", func(m *board.Model) error {
		require.NoError(t, m.Relocate("emp_1", grid.MustParse("B7")))
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, "C3", h.location(t, "emp_1"))
	assert.Empty(t, h.rec.types())
}

func TestMoveToCoordinate(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "홍길동 b7")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, command.KindMoveToCoordinate, res.Kind)
	assert.Equal(t, "홍길동님을 B7(으)로 이동했습니다", res.Message)
	assert.Equal(t, "B7", h.location(t, "emp_1"))
	assert.Equal(t, "B7", h.storedLocation(t, "emp_1"))
	assert.Equal(t, []events.EventType{events.EventBoardChanged}, h.rec.types())
	assert.Equal(t, "tester", h.rec.events[0].Actor)
}

func TestMoveToOccupiedCoordinateSuggestsSwap(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "홍길동 D4")
	require.False(t, res.Success)
	assert.Equal(t, apperrors.CodeConflict, res.Code)
	assert.Equal(t, `D4에 이미 김철수이(가) 있습니다. "홍길동이랑 김철수 바꿔"를 시도해보세요.`, res.Message)
	assert.Equal(t, "C3", h.location(t, "emp_1"))
	assert.Equal(t, "D4", h.location(t, "emp_2"))
	assert.Empty(t, h.rec.types())
}

func TestMoveUnknownNameOffersSuggestions(t *testing.T) {
	h := newHarness(t)
	res := h.commands.ExecuteCommand(h.ctx, command.MoveToCoordinate{Name: "홍동", Coordinate: grid.MustParse("B7")})
	require.False(t, res.Success)
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Equal(t, "'홍동'님을 찾을 수 없습니다 (혹시: 홍길동?)", res.Message)
}

func TestMoveToDepartment(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "이영희 교무처로 보내")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "이영희님을 교무처 옆 D5(으)로 이동했습니다", res.Message)
	seat, ok := res.Data.(DepartmentSeat)
	require.True(t, ok, "got %T", res.Data)
	assert.Equal(t, "emp_3", seat.EmployeeID)
	assert.Equal(t, "E5", seat.Anchor.String())
	assert.Equal(t, "D5", seat.Seat.String())
	assert.InDelta(t, 1.0, seat.Distance, 1e-9)

	snap := h.boards.Snapshot()
	assert.Equal(t, []string{"emp_1", "emp_2", "emp_3"}, snap.Departments[2].Members)
	assert.Empty(t, snap.Departments[3].Members)
	assert.Equal(t, "교무처", snap.Employees[2].Department)
	assert.Equal(t, "학사지원팀", snap.Employees[2].SubDepartment)
}

func TestMoveCoordinate(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "C3 B9")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "C3를 B9(으)로 이동했습니다", res.Message)
	assert.Equal(t, "B9", h.location(t, "emp_1"))

	res = h.commands.Execute(h.ctx, "E5 B10")
	assert.Equal(t, apperrors.CodeValidation, res.Code)
	assert.Equal(t, "부서 카드는 이동할 수 없습니다", res.Message)

	res = h.commands.Execute(h.ctx, "B8 B10")
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Equal(t, "B8에 아무것도 없습니다", res.Message)

	res = h.commands.Execute(h.ctx, "B9 D4")
	assert.Equal(t, apperrors.CodeConflict, res.Code)
	assert.Equal(t, "D4에 이미 김철수이(가) 있습니다", res.Message)
}

func TestSwapNames(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "홍길동 김철수 바꿔")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "홍길동님과 김철수님의 자리를 바꿨습니다", res.Message)
	assert.Equal(t, "D4", h.location(t, "emp_1"))
	assert.Equal(t, "C3", h.location(t, "emp_2"))

	res = h.commands.ExecuteCommand(h.ctx, command.SwapNames{First: "홍길동", Second: "없는이"})
	assert.False(t, res.Success)
	assert.Equal(t, "D4", h.location(t, "emp_1"), "failed swap leaves both seats")
}

func TestMoveAndSwapPreferExactName(t *testing.T) {
	h := newHarness(t)
	res := h.commands.ExecuteCommand(h.ctx, command.CreateEmployee{Name: "길동", Coordinate: grid.MustParse("B11")})
	require.True(t, res.Success, res.Message)
	created := res.Data.(domain.Employee)

	res = h.commands.ExecuteCommand(h.ctx, command.MoveToCoordinate{Name: "길동", Coordinate: grid.MustParse("B7")})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "B7", h.location(t, created.ID))
	assert.Equal(t, "C3", h.location(t, "emp_1"))

	res = h.commands.ExecuteCommand(h.ctx, command.SwapNames{First: "길동", Second: "김철수"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "D4", h.location(t, created.ID))
	assert.Equal(t, "B7", h.location(t, "emp_2"))
	assert.Equal(t, "C3", h.location(t, "emp_1"))
}

func TestCommandServiceExposesKeywords(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, command.DefaultKeywords(), h.commands.Keywords())
}

func TestSwapCoordinates(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "C3 W3 교환")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "C3과 W3의 자리를 바꿨습니다", res.Message)
	assert.Equal(t, "W3", h.location(t, "emp_1"))
	assert.Equal(t, "C3", h.location(t, "emp_3"))

	res = h.commands.Execute(h.ctx, "B8 C3 교환")
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Equal(t, "해당 좌표에 교환할 항목이 없습니다", res.Message)
	assert.Equal(t, "C3", h.location(t, "emp_3"))
}

func TestCreateAndDeleteDepartment(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "B10에 총무처 만들어")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `"총무처" 부서를 B10에 추가했습니다`, res.Message)
	created, ok := res.Data.(domain.Department)
	require.True(t, ok)
	assert.Equal(t, "dept_00000001", created.ID)

	res = h.commands.Execute(h.ctx, "C9에 교무처 만들어")
	assert.Equal(t, apperrors.CodeConflict, res.Code)
	assert.Equal(t, `"교무처" 부서가 이미 있습니다`, res.Message)

	res = h.commands.Execute(h.ctx, "부서 삭제 총무처")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `"총무처" 부서를 삭제했습니다`, res.Message)

	res = h.commands.ExecuteCommand(h.ctx, command.DeleteDepartment{Name: "총무처"})
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Equal(t, `"총무처" 부서를 찾을 수 없습니다`, res.Message)
}

func TestCreateAndDeleteEmployee(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "B11에 박보검(대리) 추가해줘")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `"박보검" 직원을 B11에 추가했습니다`, res.Message)
	created, ok := res.Data.(domain.Employee)
	require.True(t, ok)
	assert.Equal(t, "대리", created.Position)
	assert.Equal(t, domain.DefaultPhotoPosY, created.PhotoPosY)

	res = h.commands.Execute(h.ctx, "C3에 강감찬(주무관) 추가해줘")
	assert.Equal(t, apperrors.CodeConflict, res.Code)
	assert.Equal(t, "C3에 이미 홍길동이(가) 있습니다", res.Message)

	res = h.commands.Execute(h.ctx, "박보검 삭제해")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `"박보검" 직원을 삭제했습니다`, res.Message)
	assert.Len(t, h.boards.Snapshot().Employees, 3)

	res = h.commands.ExecuteCommand(h.ctx, command.DeleteEmployee{Name: "없는사람"})
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Contains(t, res.Message, `"없는사람" 직원을 찾을 수 없습니다`)
}

// flakyStore fails Save while failing is set.
type flakyStore struct {
	repository.BoardRepository
	mu      sync.Mutex
	failing bool
}

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *flakyStore) Save(ctx context.Context, b *domain.Board) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return f.BoardRepository.Save(ctx, b)
}

func TestFailedPersistRollsBackCommand(t *testing.T) {
	store := &flakyStore{BoardRepository: repository.NewMemoryBoardRepository()}
	h := newHarnessWithStore(t, store)

	require.True(t, h.commands.Execute(h.ctx, "시나리오 저장 초안").Success)
	store.setFailing(true)

	res := h.commands.Execute(h.ctx, "홍길동 F9")
	assert.False(t, res.Success)
	assert.Equal(t, apperrors.CodeInternal, res.Code)
	assert.Equal(t, "변경 사항을 저장하지 못해 이전 상태로 되돌렸습니다", res.Message)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "disk full")
	assert.Equal(t, "C3", h.location(t, "emp_1"))

	store.setFailing(false)
	require.True(t, h.commands.Execute(h.ctx, "홍길동 F9").Success)
	assert.Equal(t, "F9", h.storedLocation(t, "emp_1"))

	store.setFailing(true)
	res = h.commands.Execute(h.ctx, "시나리오 불러오기 초안")
	assert.False(t, res.Success)
	assert.Equal(t, apperrors.CodeInternal, res.Code)
	assert.Equal(t, "F9", h.location(t, "emp_1"))
	assert.Equal(t, "F9", h.storedLocation(t, "emp_1"))
}

func TestScenarioRoundTrip(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "시나리오 저장 1차안")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `시나리오 "1차안"(으)로 저장했습니다`, res.Message)

	require.True(t, h.commands.Execute(h.ctx, "홍길동 B7").Success)

	res = h.commands.Execute(h.ctx, "시나리오 불러오기 1차안")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, `시나리오 "1차안"을(를) 불러왔습니다`, res.Message)
	assert.Equal(t, "C3", h.location(t, "emp_1"))
	assert.Equal(t, "C3", h.storedLocation(t, "emp_1"))

	res = h.commands.Execute(h.ctx, "시나리오 목록")
	require.True(t, res.Success)
	assert.Equal(t, "저장된 시나리오 목록:\n  1. 1차안 (2026-03-02 09:05:00)", res.Message)

	res = h.commands.Execute(h.ctx, "시나리오 삭제 1차안")
	require.True(t, res.Success, res.Message)

	res = h.commands.Execute(h.ctx, "시나리오 불러오기 1차안")
	assert.Equal(t, apperrors.CodeNotFound, res.Code)
	assert.Equal(t, "'1차안' 시나리오를 찾을 수 없습니다", res.Message)

	assert.Equal(t, []events.EventType{
		events.EventScenarioSaved,
		events.EventBoardChanged,
		events.EventScenarioLoaded,
		events.EventScenarioDeleted,
	}, h.rec.types())
}

func TestScenarioSaveDefaultsName(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "시나리오 저장")
	require.True(t, res.Success)
	assert.Equal(t, `시나리오 "3월2일_9시5분"(으)로 저장했습니다`, res.Message)

	res = h.commands.ExecuteCommand(h.ctx, command.ScenarioLoad{})
	assert.Equal(t, apperrors.CodeValidation, res.Code)
	assert.Equal(t, "불러올 시나리오 이름을 입력해주세요", res.Message)
}

func TestScenarioUpdate(t *testing.T) {
	h := newHarness(t)
	sc, err := h.scenarios.Save(h.ctx, "초안", "")
	require.NoError(t, err)

	name, desc := "확정안", "3월 배치"
	updated, err := h.scenarios.Update(h.ctx, sc.ID, ScenarioChanges{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "확정안", updated.Name)
	assert.Equal(t, "3월 배치", updated.Description)

	blank := " "
	_, err = h.scenarios.Update(h.ctx, sc.ID, ScenarioChanges{Name: &blank})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = h.scenarios.Update(h.ctx, "scenario_missing", ScenarioChanges{Name: &name})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestFormatScenarioList(t *testing.T) {
	assert.Equal(t, "저장된 시나리오가 없습니다.", FormatScenarioList(nil))
	list := []domain.Scenario{
		{Name: "B안", Description: "회의용", CreatedAt: fixedNow},
		{Name: "A안", CreatedAt: fixedNow.Add(-time.Hour)},
	}
	assert.Equal(t, "저장된 시나리오 목록:\n  1. B안 - 회의용 (2026-03-02 09:05:00)\n  2. A안 (2026-03-02 08:05:00)", FormatScenarioList(list))
}

func TestResetRestoresSeedAndClearsStore(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.commands.Execute(h.ctx, "홍길동 B7").Success)

	res := h.commands.Execute(h.ctx, "초기화")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "원본 데이터로 초기화했습니다", res.Message)
	assert.Equal(t, "C3", h.location(t, "emp_1"))
	_, err := h.store.Load(h.ctx)
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
}

func TestPersistHelpAndUnrecognized(t *testing.T) {
	h := newHarness(t)
	res := h.commands.Execute(h.ctx, "저장")
	require.True(t, res.Success)
	assert.Equal(t, "저장되었습니다", res.Message)
	assert.Equal(t, "C3", h.storedLocation(t, "emp_1"))

	res = h.commands.Execute(h.ctx, "도움말")
	require.True(t, res.Success)
	assert.Equal(t, command.HelpText, res.Message)

	res = h.commands.Execute(h.ctx, "asdkfj")
	assert.False(t, res.Success)
	assert.Equal(t, apperrors.CodeUnrecognized, res.Code)
	assert.Equal(t, "명령어를 이해하지 못했습니다\n\"도움말\"을 입력하면 사용법을 볼 수 있습니다", res.Message)
	details := apperrors.ToDomainError(res.Err).Details
	assert.Equal(t, []string{}, details["names"])
	assert.Equal(t, []grid.Coordinate{}, details["coordinates"])
	assert.Equal(t, []string{}, details["departments"])

	res = h.commands.ExecuteCommand(h.ctx, command.Unrecognized{})
	assert.Equal(t, []string{}, apperrors.ToDomainError(res.Err).Details["names"])

	assert.Equal(t, [2]int{2, 2}, h.rec.counts[string(command.KindUnrecognized)])
	assert.Equal(t, [2]int{1, 0}, h.rec.counts[string(command.KindPersist)])
}

func TestRelabelDepartment(t *testing.T) {
	h := newHarness(t)
	display := "교무처(본관)"
	dept, err := h.boards.RelabelDepartment(h.ctx, "dept_1", board.DepartmentLabels{DisplayName: &display})
	require.NoError(t, err)
	assert.Equal(t, "교무처(본관)", dept.Label())
	assert.Equal(t, "교무처", dept.Name)

	_, err = h.boards.RelabelDepartment(h.ctx, "dept_missing", board.DepartmentLabels{DisplayName: &display})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoUploadAndPosition(t *testing.T) {
	h := newHarness(t)
	handle, err := h.photos.Upload(h.ctx, "emp_1", pngBytes(t, 400, 600))
	require.NoError(t, err)
	assert.Equal(t, "photo://emp_1", handle)

	resolved, err := h.photos.Resolve("emp_1")
	require.NoError(t, err)
	assert.Equal(t, handle, resolved)

	data, err := h.photos.Get(h.ctx, "emp_1")
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	pos, err := h.photos.SetPosition(h.ctx, "emp_1", 150)
	require.NoError(t, err)
	assert.Equal(t, 100, pos)

	require.NoError(t, h.photos.Remove(h.ctx, "emp_1"))
	_, err = h.photos.Resolve("emp_1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	_, err = h.photos.Get(h.ctx, "emp_1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = h.photos.Upload(h.ctx, "emp_missing", pngBytes(t, 10, 10))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	assert.Contains(t, h.rec.types(), events.EventPhotoUpdated)
}

func TestPhotoBulkUpload(t *testing.T) {
	h := newHarness(t)
	result := h.photos.BulkUpload(h.ctx, []UploadFile{
		{Filename: "홍길동_교무처.png", Data: pngBytes(t, 20, 20)},
		{Filename: "누구.png", Data: pngBytes(t, 20, 20)},
		{Filename: "김철수.jpg", Data: []byte("not an image")},
	})
	require.Len(t, result.Matched, 1)
	assert.Equal(t, "emp_1", result.Matched[0].EmployeeID)
	assert.Equal(t, []string{"누구.png"}, result.Unmatched)
	assert.Equal(t, []string{"김철수.jpg"}, result.Failed)
}

func TestSuggestNames(t *testing.T) {
	candidates := []string{"홍길동", "김철수", "이영희"}
	assert.Equal(t, []string{"홍길동"}, suggestNames("홍동", candidates))
	assert.Equal(t, []string{"김철수"}, suggestNames("김철수님", candidates))
	assert.Empty(t, suggestNames("박보검", candidates))
	assert.Empty(t, suggestNames("", candidates))
	assert.Equal(t, "없음 (혹시: a, b?)", withSuggestions("없음", []string{"a", "b"}))
}
