package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/command"
	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// CommandRecorder receives one observation per executed command.
type CommandRecorder interface {
	RecordCommand(kind string, success bool, duration time.Duration)
}

// Result is the outcome of one command. Failures carry the error code and a
// message meant for the operator.
type Result struct {
	Kind    command.Kind    `json:"kind"`
	Command command.Command `json:"command"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Data    any             `json:"data,omitempty"`
	Err     error           `json:"-"`
}

// CommandService parses operator text and applies it to the board, one command at a time.
type CommandService struct {
	mu            sync.Mutex
	parser        *command.Parser
	boards        *BoardService
	scenarios     *ScenarioService
	metrics       CommandRecorder
	logger        *zap.Logger
	nearestRadius int
}

// CommandDependencies encapsulates collaborators of the command service.
type CommandDependencies struct {
	Parser        *command.Parser
	Boards        *BoardService
	Scenarios     *ScenarioService
	Metrics       CommandRecorder
	Logger        *zap.Logger
	NearestRadius int
}

// NewCommandService constructs the executor.
func NewCommandService(deps CommandDependencies) *CommandService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := deps.Parser
	if parser == nil {
		parser = command.NewParser(command.DefaultKeywords())
	}
	radius := deps.NearestRadius
	if radius <= 0 {
		radius = board.DefaultSearchRadius
	}
	return &CommandService{
		parser:        parser,
		boards:        deps.Boards,
		scenarios:     deps.Scenarios,
		metrics:       deps.Metrics,
		logger:        logger,
		nearestRadius: radius,
	}
}

// Parse interprets text against the live board without executing it.
func (s *CommandService) Parse(text string) command.Command {
	var cmd command.Command
	s.boards.View(func(m *board.Model) {
		cmd = s.parser.Parse(text, m)
	})
	return cmd
}

// Execute parses text and runs the resulting command.
func (s *CommandService) Execute(ctx context.Context, text string) Result {
	return s.ExecuteCommand(ctx, s.Parse(text))
}

// Keywords returns the vocabulary the parser was built with.
func (s *CommandService) Keywords() command.Keywords {
	return s.parser.Keywords()
}

// ExecuteCommand runs an already parsed command.
func (s *CommandService) ExecuteCommand(ctx context.Context, cmd command.Command) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	data, message, err := s.dispatch(ctx, cmd)
	res := Result{Kind: cmd.Kind(), Command: cmd, Success: err == nil, Message: message, Data: data, Err: err}
	if err != nil {
		derr := apperrors.ToDomainError(err)
		res.Code = derr.Code
		res.Message = derr.Message
	}
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordCommand(string(res.Kind), res.Success, elapsed)
	}

	fields := []zap.Field{
		zap.String("kind", string(res.Kind)),
		zap.String("input", cmd.Input()),
		zap.String("actor", ActorFromContext(ctx)),
		zap.Duration("duration", elapsed),
	}
	switch {
	case res.Success:
		s.logger.Info("command executed", fields...)
	case res.Code == apperrors.CodeInternal:
		s.logger.Error("command failed", append(fields, zap.Error(err))...)
	default:
		s.logger.Debug("command rejected", append(fields, zap.String("code", res.Code), zap.String("reason", res.Message))...)
	}
	return res
}

func (s *CommandService) dispatch(ctx context.Context, cmd command.Command) (any, string, error) {
	switch c := cmd.(type) {
	case command.MoveToCoordinate:
		return s.moveToCoordinate(ctx, c)
	case command.MoveToDepartment:
		return s.moveToDepartment(ctx, c)
	case command.MoveCoordinate:
		return s.moveCoordinate(ctx, c)
	case command.SwapNames:
		return s.swapNames(ctx, c)
	case command.SwapCoordinates:
		return s.swapCoordinates(ctx, c)
	case command.Reset:
		if err := s.boards.Reset(ctx); err != nil {
			return nil, "", err
		}
		return nil, "원본 데이터로 초기화했습니다", nil
	case command.Persist:
		if err := s.boards.Persist(ctx); err != nil {
			return nil, "", err
		}
		return nil, "저장되었습니다", nil
	case command.Help:
		return nil, command.HelpText, nil
	case command.CreateDepartment:
		return s.createDepartment(ctx, c)
	case command.DeleteDepartment:
		return s.deleteDepartment(ctx, c)
	case command.CreateEmployee:
		return s.createEmployee(ctx, c)
	case command.DeleteEmployee:
		return s.deleteEmployee(ctx, c)
	case command.ScenarioSave:
		return s.scenarioSave(ctx, c)
	case command.ScenarioLoad:
		sc, err := s.scenarios.Load(ctx, c.Name)
		if err != nil {
			return nil, "", err
		}
		return scenarioSummary(sc), fmt.Sprintf("시나리오 \"%s\"을(를) 불러왔습니다", sc.Name), nil
	case command.ScenarioDelete:
		sc, err := s.scenarios.Delete(ctx, c.Name)
		if err != nil {
			return nil, "", err
		}
		return scenarioSummary(sc), fmt.Sprintf("시나리오 \"%s\"을(를) 삭제했습니다", sc.Name), nil
	case command.ScenarioList:
		list, err := s.scenarios.List(ctx)
		if err != nil {
			return nil, "", err
		}
		summaries := make([]ScenarioSummary, 0, len(list))
		for i := range list {
			summaries = append(summaries, scenarioSummary(&list[i]))
		}
		return summaries, FormatScenarioList(list), nil
	case command.Unrecognized:
		return nil, "", unrecognized(c)
	default:
		return nil, "", apperrors.NewInternalError(fmt.Errorf("unhandled command %T", cmd))
	}
}

func (s *CommandService) moveToCoordinate(ctx context.Context, c command.MoveToCoordinate) (any, string, error) {
	var message string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		emp, err := s.resolveEmployee(m, c.Name)
		if err != nil {
			return err
		}
		if occ, taken := m.At(c.Coordinate); taken && occ.ID() != emp.ID {
			return occupiedWithHint(c.Coordinate, occ, emp.Name)
		}
		if err := m.Relocate(emp.ID, c.Coordinate); err != nil {
			return err
		}
		message = fmt.Sprintf("%s님을 %s(으)로 이동했습니다", emp.Name, c.Coordinate)
		return nil
	})
	return nil, message, err
}

// DepartmentSeat reports where a move-to-department landed relative to the department card.
type DepartmentSeat struct {
	EmployeeID string          `json:"employeeId"`
	Department string          `json:"department"`
	Anchor     grid.Coordinate `json:"anchor"`
	Seat       grid.Coordinate `json:"seat"`
	Distance   float64         `json:"distance"`
}

func (s *CommandService) moveToDepartment(ctx context.Context, c command.MoveToDepartment) (any, string, error) {
	var message string
	var seat DepartmentSeat
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		emp, err := s.resolveEmployee(m, c.Name)
		if err != nil {
			return err
		}
		depts := m.FindDepartments(c.Department)
		if len(depts) == 0 {
			return notFound(fmt.Sprintf("'%s' 부서를 찾을 수 없습니다", c.Department), map[string]any{"department": c.Department})
		}
		target, err := m.MoveToDepartment(emp.ID, c.Department, s.nearestRadius)
		if err != nil {
			if apperrors.HasCode(err, apperrors.CodeConflict) {
				return apperrors.NewConflict(fmt.Sprintf("%s 주변에 빈 자리가 없습니다", depts[0].Label()), apperrors.ToDomainError(err).Details)
			}
			return err
		}
		_, _, dist := grid.Distance(depts[0].Location, target)
		seat = DepartmentSeat{EmployeeID: emp.ID, Department: depts[0].Name, Anchor: depts[0].Location, Seat: target, Distance: dist}
		message = fmt.Sprintf("%s님을 %s 옆 %s(으)로 이동했습니다", emp.Name, depts[0].Label(), target)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return seat, message, nil
}

func (s *CommandService) moveCoordinate(ctx context.Context, c command.MoveCoordinate) (any, string, error) {
	var message string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		mover, ok := m.At(c.From)
		if !ok {
			return notFound(fmt.Sprintf("%s에 아무것도 없습니다", c.From), map[string]any{"coordinate": c.From.String()})
		}
		if occ, taken := m.At(c.To); taken && occ.ID() != mover.ID() {
			return apperrors.NewConflict(fmt.Sprintf("%s에 이미 %s이(가) 있습니다", c.To, occ.Label()), occupantDetails(c.To, occ))
		}
		if mover.Kind == board.KindDepartment {
			return apperrors.NewValidationError("부서 카드는 이동할 수 없습니다", map[string]any{"department": mover.Label()})
		}
		if err := m.Relocate(mover.ID(), c.To); err != nil {
			return err
		}
		message = fmt.Sprintf("%s를 %s(으)로 이동했습니다", c.From, c.To)
		return nil
	})
	return nil, message, err
}

func (s *CommandService) swapNames(ctx context.Context, c command.SwapNames) (any, string, error) {
	var message string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		a, err := s.resolveEmployee(m, c.First)
		if err != nil {
			return err
		}
		b, err := s.resolveEmployee(m, c.Second)
		if err != nil {
			return err
		}
		if a.ID == b.ID {
			return apperrors.NewValidationError("같은 사람끼리는 자리를 바꿀 수 없습니다", map[string]any{"name": a.Name})
		}
		if err := m.Swap(a.ID, b.ID); err != nil {
			return err
		}
		message = fmt.Sprintf("%s님과 %s님의 자리를 바꿨습니다", a.Name, b.Name)
		return nil
	})
	return nil, message, err
}

func (s *CommandService) swapCoordinates(ctx context.Context, c command.SwapCoordinates) (any, string, error) {
	var message string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		if c.First == c.Second {
			return apperrors.NewValidationError("같은 좌표끼리는 바꿀 수 없습니다", map[string]any{"coordinate": c.First.String()})
		}
		_, okA := m.At(c.First)
		_, okB := m.At(c.Second)
		if !okA || !okB {
			return notFound("해당 좌표에 교환할 항목이 없습니다", map[string]any{"first": c.First.String(), "second": c.Second.String()})
		}
		if err := m.SwapAt(c.First, c.Second); err != nil {
			return err
		}
		message = fmt.Sprintf("%s과 %s의 자리를 바꿨습니다", c.First, c.Second)
		return nil
	})
	return nil, message, err
}

func (s *CommandService) createDepartment(ctx context.Context, c command.CreateDepartment) (any, string, error) {
	var created domain.Department
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		for _, d := range m.Departments() {
			if d.Name == c.Name {
				return apperrors.NewConflict(fmt.Sprintf("\"%s\" 부서가 이미 있습니다", c.Name), map[string]any{"department": c.Name, "coordinate": d.Location.String()})
			}
		}
		if occ, taken := m.At(c.Coordinate); taken {
			return apperrors.NewConflict(fmt.Sprintf("%s에 이미 %s이(가) 있습니다", c.Coordinate, occ.Label()), occupantDetails(c.Coordinate, occ))
		}
		d, err := m.AddDepartment(board.NewDepartment{Name: c.Name, Location: c.Coordinate})
		if err != nil {
			return err
		}
		created = *d
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return created, fmt.Sprintf("\"%s\" 부서를 %s에 추가했습니다", created.Name, created.Location), nil
}

func (s *CommandService) deleteDepartment(ctx context.Context, c command.DeleteDepartment) (any, string, error) {
	var removed string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		d, ok := m.ResolveDepartment(c.Name)
		if !ok {
			return notFound(fmt.Sprintf("\"%s\" 부서를 찾을 수 없습니다", c.Name), map[string]any{"department": c.Name})
		}
		if _, err := m.RemoveDepartment(d.ID); err != nil {
			return err
		}
		removed = d.Name
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return nil, fmt.Sprintf("\"%s\" 부서를 삭제했습니다", removed), nil
}

func (s *CommandService) createEmployee(ctx context.Context, c command.CreateEmployee) (any, string, error) {
	var created domain.Employee
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		if occ, taken := m.At(c.Coordinate); taken {
			return apperrors.NewConflict(fmt.Sprintf("%s에 이미 %s이(가) 있습니다", c.Coordinate, occ.Label()), occupantDetails(c.Coordinate, occ))
		}
		e, err := m.AddEmployee(board.NewEmployee{Name: c.Name, Position: c.Position, Location: c.Coordinate})
		if err != nil {
			return err
		}
		created = *e
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return created, fmt.Sprintf("\"%s\" 직원을 %s에 추가했습니다", created.Name, created.Location), nil
}

func (s *CommandService) deleteEmployee(ctx context.Context, c command.DeleteEmployee) (any, string, error) {
	var removed string
	err := s.boards.Update(ctx, string(c.Kind()), func(m *board.Model) error {
		emp, ok := m.ResolveEmployee(c.Name)
		if !ok {
			msg := withSuggestions(fmt.Sprintf("\"%s\" 직원을 찾을 수 없습니다", c.Name), suggestNames(c.Name, m.EmployeeNames()))
			return notFound(msg, map[string]any{"name": c.Name})
		}
		if _, err := m.RemoveEmployee(emp.ID); err != nil {
			return err
		}
		removed = emp.Name
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return nil, fmt.Sprintf("\"%s\" 직원을 삭제했습니다", removed), nil
}

func (s *CommandService) scenarioSave(ctx context.Context, c command.ScenarioSave) (any, string, error) {
	sc, err := s.scenarios.Save(ctx, c.Name, "")
	if err != nil {
		return nil, "", err
	}
	return scenarioSummary(sc), fmt.Sprintf("시나리오 \"%s\"(으)로 저장했습니다", sc.Name), nil
}

func (s *CommandService) resolveEmployee(m *board.Model, name string) (*domain.Employee, error) {
	if emp, ok := m.ResolveEmployee(name); ok {
		return emp, nil
	}
	msg := withSuggestions(fmt.Sprintf("'%s'님을 찾을 수 없습니다", name), suggestNames(name, m.EmployeeNames()))
	return nil, notFound(msg, map[string]any{"name": name})
}

// ScenarioSummary is a scenario without its board payload.
type ScenarioSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func scenarioSummary(sc *domain.Scenario) ScenarioSummary {
	return ScenarioSummary{ID: sc.ID, Name: sc.Name, Description: sc.Description, CreatedAt: sc.CreatedAt, UpdatedAt: sc.UpdatedAt}
}

func occupiedWithHint(c grid.Coordinate, occ board.Entity, mover string) error {
	msg := fmt.Sprintf("%s에 이미 %s이(가) 있습니다. \"%s이랑 %s 바꿔\"를 시도해보세요.", c, occ.Label(), mover, occ.Label())
	return apperrors.NewConflict(msg, occupantDetails(c, occ))
}

func occupantDetails(c grid.Coordinate, occ board.Entity) map[string]any {
	return map[string]any{
		"coordinate":   c.String(),
		"occupant":     occ.Label(),
		"occupantId":   occ.ID(),
		"occupantKind": string(occ.Kind),
	}
}

func notFound(message string, details map[string]any) error {
	return apperrors.NewDomainError(apperrors.CodeNotFound, message, http.StatusNotFound, details)
}

func unrecognized(c command.Unrecognized) error {
	lines := []string{"명령어를 이해하지 못했습니다"}
	if len(c.Names) > 0 {
		lines = append(lines, "인식된 이름: "+strings.Join(c.Names, ", "))
	}
	if len(c.Coordinates) > 0 {
		coords := make([]string, len(c.Coordinates))
		for i, co := range c.Coordinates {
			coords[i] = co.String()
		}
		lines = append(lines, "인식된 좌표: "+strings.Join(coords, ", "))
	}
	if len(c.Departments) > 0 {
		lines = append(lines, "인식된 부서: "+strings.Join(c.Departments, ", "))
	}
	lines = append(lines, "\"도움말\"을 입력하면 사용법을 볼 수 있습니다")
	return apperrors.NewUnrecognized(strings.Join(lines, "\n"), map[string]any{
		"input":       c.Input(),
		"names":       orEmpty(c.Names),
		"coordinates": orEmpty(c.Coordinates),
		"departments": orEmpty(c.Departments),
	})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
