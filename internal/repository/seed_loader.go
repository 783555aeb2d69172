package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spec-kit/seatboard/internal/domain"
)

// SeedLoader reads the seed board the operator can always reset to.
type SeedLoader interface {
	Load(ctx context.Context) (*domain.Board, error)
}

// seedFile mirrors the board JSON; lastUpdated is free-form text in hand-edited seeds.
type seedFile struct {
	Departments []*domain.Department `json:"departments"`
	Employees   []*domain.Employee   `json:"employees"`
}

type fileSeedLoader struct {
	path  string
	newID func(prefix string) string
}

// NewFileSeedLoader reads the seed from path. Entities without an ID get one from newID.
func NewFileSeedLoader(path string, newID func(prefix string) string) SeedLoader {
	return &fileSeedLoader{path: path, newID: newID}
}

func (l *fileSeedLoader) Load(ctx context.Context) (*domain.Board, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", l.path, err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", l.path, err)
	}
	board := &domain.Board{Departments: seed.Departments, Employees: seed.Employees}
	for _, d := range board.Departments {
		if d.ID == "" {
			d.ID = l.newID("dept")
		}
		if d.Members == nil {
			d.Members = []string{}
		}
	}
	for _, e := range board.Employees {
		if e.ID == "" {
			e.ID = l.newID("emp")
		}
		if !e.EmploymentType.Valid() {
			e.EmploymentType = domain.EmploymentRegular
		}
	}
	return board, nil
}

type staticSeedLoader struct {
	board *domain.Board
}

// NewStaticSeedLoader always returns a copy of board.
func NewStaticSeedLoader(board *domain.Board) SeedLoader {
	return &staticSeedLoader{board: board}
}

func (l *staticSeedLoader) Load(ctx context.Context) (*domain.Board, error) {
	if l.board == nil {
		return &domain.Board{}, nil
	}
	return l.board.Clone(), nil
}
