package domain

import "time"

// Scenario is a named snapshot of the whole board, stored apart from the live board.
type Scenario struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Board       *Board    `json:"data"`
}
