package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/repository"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// ScenarioService saves, restores and lists named board snapshots.
type ScenarioService struct {
	repo       repository.ScenarioRepository
	boards     *BoardService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ScenarioDependencies encapsulates collaborators of the scenario service.
type ScenarioDependencies struct {
	Repo       repository.ScenarioRepository
	Boards     *BoardService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// NewScenarioService constructs the service.
func NewScenarioService(deps ScenarioDependencies) *ScenarioService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &ScenarioService{
		repo:       deps.Repo,
		boards:     deps.Boards,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// DefaultScenarioName labels an unnamed snapshot with its local time, e.g. "3월2일_9시5분".
func DefaultScenarioName(t time.Time) string {
	return fmt.Sprintf("%d월%d일_%d시%d분", int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// Save snapshots the live board. An empty name is replaced by DefaultScenarioName.
func (s *ScenarioService) Save(ctx context.Context, name, description string) (*domain.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultScenarioName(s.now())
	}
	scenario, err := s.repo.Save(ctx, name, description, s.boards.Snapshot())
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("save scenario: %w", err))
	}
	s.publish(ctx, events.EventScenarioSaved, scenario)
	s.logger.Info("scenario saved", zap.String("scenario_id", scenario.ID), zap.String("name", scenario.Name))
	return scenario, nil
}

// Load replaces the live board with the scenario best matching name.
func (s *ScenarioService) Load(ctx context.Context, name string) (*domain.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("불러올 시나리오 이름을 입력해주세요", nil)
	}
	scenario, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, mapScenarioError(err, name)
	}
	if scenario.Board == nil {
		return nil, apperrors.NewValidationError("scenario has no board data", map[string]any{"scenario_id": scenario.ID})
	}
	payload := events.BoardChangedPayload{CommandKind: string(events.EventScenarioLoaded), Board: scenario.Board}
	if err := s.boards.Replace(ctx, scenario.Board, events.EventScenarioLoaded, payload); err != nil {
		return nil, err
	}
	s.logger.Info("scenario loaded", zap.String("scenario_id", scenario.ID), zap.String("name", scenario.Name))
	return scenario, nil
}

// Delete removes the scenario best matching name.
func (s *ScenarioService) Delete(ctx context.Context, name string) (*domain.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("삭제할 시나리오 이름을 입력해주세요", nil)
	}
	scenario, err := s.repo.DeleteByName(ctx, name)
	if err != nil {
		return nil, mapScenarioError(err, name)
	}
	s.publish(ctx, events.EventScenarioDeleted, scenario)
	return scenario, nil
}

// List returns stored scenarios, newest first.
func (s *ScenarioService) List(ctx context.Context) ([]domain.Scenario, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list scenarios: %w", err))
	}
	return list, nil
}

// ScenarioChanges carries optional updates; nil fields are left unchanged.
type ScenarioChanges struct {
	Name        *string
	Description *string
}

// Update renames a scenario or edits its description.
func (s *ScenarioService) Update(ctx context.Context, id string, changes ScenarioChanges) (*domain.Scenario, error) {
	scenario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapScenarioError(err, id)
	}
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("새 이름이 필요합니다", map[string]any{"field": "name"})
		}
		scenario.Name = name
	}
	if changes.Description != nil {
		scenario.Description = strings.TrimSpace(*changes.Description)
	}
	if err := s.repo.Update(ctx, scenario); err != nil {
		return nil, mapScenarioError(err, id)
	}
	return scenario, nil
}

// FormatScenarioList renders the operator-facing list.
func FormatScenarioList(list []domain.Scenario) string {
	if len(list) == 0 {
		return "저장된 시나리오가 없습니다."
	}
	lines := []string{"저장된 시나리오 목록:"}
	for i, sc := range list {
		desc := ""
		if sc.Description != "" {
			desc = " - " + sc.Description
		}
		lines = append(lines, fmt.Sprintf("  %d. %s%s (%s)", i+1, sc.Name, desc, sc.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return strings.Join(lines, "\n")
}

func (s *ScenarioService) publish(ctx context.Context, eventType events.EventType, scenario *domain.Scenario) {
	if s.dispatcher == nil {
		return
	}
	payload := events.ScenarioPayload{ScenarioID: scenario.ID, Name: scenario.Name}
	if err := s.dispatcher.Publish(ctx, events.New(eventType, ActorFromContext(ctx), payload)); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func mapScenarioError(err error, ref string) error {
	if errors.Is(err, repository.ErrScenarioNotFound) {
		return apperrors.NewDomainError(apperrors.CodeNotFound, fmt.Sprintf("'%s' 시나리오를 찾을 수 없습니다", ref), 404, map[string]any{"scenario": ref})
	}
	return apperrors.NewInternalError(err)
}
