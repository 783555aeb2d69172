package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/seatboard/internal/domain"
)

// ErrScenarioNotFound is returned when no scenario matches.
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository stores named board snapshots. List is newest first.
// Name lookups prefer an exact match and fall back to the newest scenario
// whose name contains the query.
type ScenarioRepository interface {
	List(ctx context.Context) ([]domain.Scenario, error)
	Save(ctx context.Context, name, description string, board *domain.Board) (*domain.Scenario, error)
	GetByID(ctx context.Context, id string) (*domain.Scenario, error)
	FindByName(ctx context.Context, name string) (*domain.Scenario, error)
	DeleteByName(ctx context.Context, name string) (*domain.Scenario, error)
	Update(ctx context.Context, scenario *domain.Scenario) error
}

// NewScenarioID returns "scenario_<uuid>".
func NewScenarioID() string {
	return "scenario_" + uuid.NewString()
}

type scenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository builds the postgres-backed repository.
func NewScenarioRepository(pool *pgxpool.Pool) ScenarioRepository {
	return &scenarioRepository{pool: pool}
}

const scenarioColumns = `id, name, description, data, created_at, updated_at`

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var (
		s   domain.Scenario
		raw []byte
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScenarioNotFound
		}
		return nil, err
	}
	s.Board = &domain.Board{}
	if err := json.Unmarshal(raw, s.Board); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", s.ID, err)
	}
	return &s, nil
}

func (r *scenarioRepository) List(ctx context.Context) ([]domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *scenarioRepository) Save(ctx context.Context, name, description string, board *domain.Board) (*domain.Scenario, error) {
	raw, err := json.Marshal(board)
	if err != nil {
		return nil, fmt.Errorf("encode scenario board: %w", err)
	}
	s := &domain.Scenario{
		ID:          NewScenarioID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Board:       board.Clone(),
	}
	const query = `
        INSERT INTO scenarios (id, name, description, data)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query, s.ID, s.Name, s.Description, raw).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *scenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id=$1`
	return scanScenario(r.pool.QueryRow(ctx, query, id))
}

func (r *scenarioRepository) FindByName(ctx context.Context, name string) (*domain.Scenario, error) {
	query := `
        SELECT ` + scenarioColumns + `
        FROM scenarios
        WHERE name = $1 OR strpos(name, $1) > 0
        ORDER BY (name = $1) DESC, created_at DESC
        LIMIT 1`
	return scanScenario(r.pool.QueryRow(ctx, query, strings.TrimSpace(name)))
}

func (r *scenarioRepository) DeleteByName(ctx context.Context, name string) (*domain.Scenario, error) {
	s, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE id=$1`, s.ID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrScenarioNotFound
	}
	return s, nil
}

func (r *scenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) error {
	const query = `
        UPDATE scenarios SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query, scenario.Name, scenario.Description, scenario.ID).Scan(&scenario.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrScenarioNotFound
		}
		return err
	}
	return nil
}

type memoryScenarioRepository struct {
	mu        sync.Mutex
	now       func() time.Time
	scenarios []*domain.Scenario
}

// NewMemoryScenarioRepository keeps scenarios in process memory. now may be nil.
func NewMemoryScenarioRepository(now func() time.Time) ScenarioRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryScenarioRepository{now: now}
}

func copyScenario(s *domain.Scenario) *domain.Scenario {
	cp := *s
	cp.Board = s.Board.Clone()
	return &cp
}

func (r *memoryScenarioRepository) List(ctx context.Context) ([]domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		result = append(result, *copyScenario(s))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryScenarioRepository) Save(ctx context.Context, name, description string, board *domain.Board) (*domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s := &domain.Scenario{
		ID:          NewScenarioID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
		Board:       board.Clone(),
	}
	r.scenarios = append([]*domain.Scenario{s}, r.scenarios...)
	return copyScenario(s), nil
}

func (r *memoryScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scenarios {
		if s.ID == id {
			return copyScenario(s), nil
		}
	}
	return nil, ErrScenarioNotFound
}

func (r *memoryScenarioRepository) find(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	for i, s := range r.scenarios {
		if s.Name == name {
			return i
		}
	}
	for i, s := range r.scenarios {
		if strings.Contains(s.Name, name) {
			return i
		}
	}
	return -1
}

func (r *memoryScenarioRepository) FindByName(ctx context.Context, name string) (*domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(name)
	if i < 0 {
		return nil, ErrScenarioNotFound
	}
	return copyScenario(r.scenarios[i]), nil
}

func (r *memoryScenarioRepository) DeleteByName(ctx context.Context, name string) (*domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(name)
	if i < 0 {
		return nil, ErrScenarioNotFound
	}
	removed := r.scenarios[i]
	r.scenarios = append(r.scenarios[:i:i], r.scenarios[i+1:]...)
	return removed, nil
}

func (r *memoryScenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scenarios {
		if s.ID == scenario.ID {
			s.Name = scenario.Name
			s.Description = scenario.Description
			s.UpdatedAt = r.now()
			scenario.UpdatedAt = s.UpdatedAt
			return nil
		}
	}
	return ErrScenarioNotFound
}
