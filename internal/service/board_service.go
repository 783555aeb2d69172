package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/repository"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// BoardService owns the live board model. Reads and writes go through View
// and Update so only one mutation runs at a time.
type BoardService struct {
	mu         sync.RWMutex
	model      *board.Model
	store      repository.BoardRepository
	seed       repository.SeedLoader
	dispatcher events.Dispatcher
	logger     *zap.Logger
	parentOrgs []board.ParentOrg
	opts       []board.Option
}

// BoardDependencies encapsulates collaborators of the board service.
type BoardDependencies struct {
	Store        repository.BoardRepository
	Seed         repository.SeedLoader
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	ParentOrgs   []board.ParentOrg
	ModelOptions []board.Option
}

// NewBoardService constructs the service with an empty board; call Init to load.
func NewBoardService(deps BoardDependencies) *BoardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parentOrgs := deps.ParentOrgs
	if parentOrgs == nil {
		parentOrgs = board.DefaultParentOrgs
	}
	return &BoardService{
		model:      board.New(nil, deps.ModelOptions...),
		store:      deps.Store,
		seed:       deps.Seed,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		parentOrgs: parentOrgs,
		opts:       deps.ModelOptions,
	}
}

// Init loads the stored board, falling back to the seed when nothing usable is stored.
func (s *BoardService) Init(ctx context.Context) error {
	m, source, err := s.loadStored(ctx)
	if err != nil {
		return err
	}
	if m == nil {
		if m, err = s.loadSeed(ctx); err != nil {
			return err
		}
		source = "seed"
	}

	changed, err := m.EnsureParentOrgs(s.parentOrgs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.model = m
	s.mu.Unlock()

	if changed && s.store != nil {
		if err := s.store.Save(ctx, m.Snapshot()); err != nil {
			s.logger.Warn("persist seeded parent organisations failed", zap.Error(err))
		}
	}
	s.logger.Info("board loaded",
		zap.String("source", source),
		zap.Int("employees", len(m.Employees())),
		zap.Int("departments", len(m.Departments())))
	return nil
}

func (s *BoardService) loadStored(ctx context.Context) (*board.Model, string, error) {
	if s.store == nil {
		return nil, "", nil
	}
	stored, err := s.store.Load(ctx)
	if errors.Is(err, repository.ErrBoardNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", apperrors.NewInternalError(fmt.Errorf("load board: %w", err))
	}
	m, err := board.Load(stored, s.opts...)
	if err != nil {
		s.logger.Warn("stored board is invalid; falling back to seed", zap.Error(err))
		return nil, "", nil
	}
	return m, "store", nil
}

func (s *BoardService) loadSeed(ctx context.Context) (*board.Model, error) {
	if s.seed == nil {
		return board.New(nil, s.opts...), nil
	}
	seed, err := s.seed.Load(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load seed: %w", err))
	}
	return board.Load(seed, s.opts...)
}

// View runs fn with read access to the model. fn must not mutate it.
func (s *BoardService) View(fn func(m *board.Model)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.model)
}

// Snapshot returns a detached copy of the live board.
func (s *BoardService) Snapshot() *domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Snapshot()
}

// Update runs fn with exclusive access. When fn fails the board is restored
// to its prior state. On success a board_changed event carries the new
// snapshot; if a handler fails to persist it, the change is rolled back too.
// Handlers run under the write lock and must not call back into the service.
func (s *BoardService) Update(ctx context.Context, kind string, fn func(m *board.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.model.Snapshot()
	if err := fn(s.model); err != nil {
		s.model = board.New(before, s.opts...)
		return err
	}
	after := s.model.Snapshot()
	if err := s.publish(ctx, events.EventBoardChanged, events.BoardChangedPayload{CommandKind: kind, Board: after}); err != nil {
		s.model = board.New(before, s.opts...)
		return persistFailed(err)
	}
	return nil
}

// Replace swaps in a whole board, as when a scenario is loaded. The previous
// board stays live when the event handlers fail.
func (s *BoardService) Replace(ctx context.Context, b *domain.Board, eventType events.EventType, payload any) error {
	m, err := board.Load(b.Clone(), s.opts...)
	if err != nil {
		return err
	}
	m.Touch()

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.model
	s.model = m
	if err := s.publish(ctx, eventType, payload); err != nil {
		s.model = previous
		return persistFailed(err)
	}
	return nil
}

// Reset reloads the seed and clears the stored board. The live board is kept on failure.
func (s *BoardService) Reset(ctx context.Context) error {
	m, err := s.loadSeed(ctx)
	if err != nil {
		return err
	}
	if _, err := m.EnsureParentOrgs(s.parentOrgs); err != nil {
		return err
	}
	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			return apperrors.NewInternalError(fmt.Errorf("clear stored board: %w", err))
		}
	}

	s.mu.Lock()
	s.model = m
	s.mu.Unlock()

	if err := s.publish(ctx, events.EventBoardReset, events.BoardChangedPayload{CommandKind: "reset", Board: m.Snapshot()}); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(events.EventBoardReset)), zap.Error(err))
	}
	s.logger.Info("board reset to seed")
	return nil
}

// Persist writes the live board to the store.
func (s *BoardService) Persist(ctx context.Context) error {
	if s.store == nil {
		return apperrors.NewInternalError(errors.New("no board store configured"))
	}
	if err := s.store.Save(ctx, s.Snapshot()); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("save board: %w", err))
	}
	return nil
}

// RelabelDepartment changes the presentation fields of a department.
func (s *BoardService) RelabelDepartment(ctx context.Context, id string, labels board.DepartmentLabels) (*domain.Department, error) {
	var updated domain.Department
	err := s.Update(ctx, "relabel_department", func(m *board.Model) error {
		d, err := m.RelabelDepartment(id, labels)
		if err != nil {
			return err
		}
		updated = *d
		updated.Members = append([]string(nil), d.Members...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *BoardService) publish(ctx context.Context, eventType events.EventType, payload any) error {
	if s.dispatcher == nil {
		return nil
	}
	return s.dispatcher.Publish(ctx, events.New(eventType, ActorFromContext(ctx), payload))
}

func persistFailed(err error) error {
	derr := apperrors.NewDomainError(apperrors.CodeInternal, "변경 사항을 저장하지 못해 이전 상태로 되돌렸습니다", http.StatusInternalServerError, nil)
	derr.Err = err
	return derr
}
