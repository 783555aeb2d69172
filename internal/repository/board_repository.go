package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/seatboard/internal/domain"
)

// ErrBoardNotFound is returned by Load when no board has been stored yet.
var ErrBoardNotFound = errors.New("board not found")

// BoardRepository persists the live board. Save is idempotent.
type BoardRepository interface {
	Load(ctx context.Context) (*domain.Board, error)
	Save(ctx context.Context, board *domain.Board) error
	Clear(ctx context.Context) error
}

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository stores the board as a single JSONB row.
func NewBoardRepository(pool *pgxpool.Pool) BoardRepository {
	return &boardRepository{pool: pool}
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	const query = `SELECT data FROM board_state WHERE id = 1`
	var raw []byte
	if err := r.pool.QueryRow(ctx, query).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	var board domain.Board
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("decode stored board: %w", err)
	}
	return &board, nil
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	const query = `
        INSERT INTO board_state (id, data, updated_at)
        VALUES (1, $1, NOW())
        ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
	_, err = r.pool.Exec(ctx, query, raw)
	return err
}

func (r *boardRepository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM board_state WHERE id = 1`)
	return err
}
