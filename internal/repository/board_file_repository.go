package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spec-kit/seatboard/internal/domain"
)

type fileBoardRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileBoardRepository keeps the board in a JSON file, replaced atomically on save.
func NewFileBoardRepository(path string) BoardRepository {
	return &fileBoardRepository{path: path}
}

func (r *fileBoardRepository) Load(ctx context.Context) (*domain.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("read board file: %w", err)
	}
	var board domain.Board
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("decode board file %s: %w", r.path, err)
	}
	return &board, nil
}

func (r *fileBoardRepository) Save(ctx context.Context, board *domain.Board) error {
	raw, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".board-*.json")
	if err != nil {
		return fmt.Errorf("create temp board file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write board file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close board file: %w", err)
	}
	return os.Rename(tmp.Name(), r.path)
}

func (r *fileBoardRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type memoryBoardRepository struct {
	mu    sync.Mutex
	board *domain.Board
}

// NewMemoryBoardRepository keeps a detached copy of the board in memory.
func NewMemoryBoardRepository() BoardRepository {
	return &memoryBoardRepository{}
}

func (r *memoryBoardRepository) Load(ctx context.Context) (*domain.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.board == nil {
		return nil, ErrBoardNotFound
	}
	return r.board.Clone(), nil
}

func (r *memoryBoardRepository) Save(ctx context.Context, board *domain.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = board.Clone()
	return nil
}

func (r *memoryBoardRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = nil
	return nil
}
