package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/seatboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBoardChanged    EventType = "board_changed"
	EventBoardReset      EventType = "board_reset"
	EventScenarioSaved   EventType = "scenario_saved"
	EventScenarioLoaded  EventType = "scenario_loaded"
	EventScenarioDeleted EventType = "scenario_deleted"
	EventPhotoUpdated    EventType = "photo_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh ID and the current time.
func New(eventType EventType, actor string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// BoardChangedPayload carries a snapshot taken after the mutation.
type BoardChangedPayload struct {
	CommandKind string        `json:"command_kind"`
	Board       *domain.Board `json:"board"`
}

// ScenarioPayload identifies the scenario an event refers to.
type ScenarioPayload struct {
	ScenarioID string `json:"scenario_id"`
	Name       string `json:"name"`
}

// PhotoUpdatedPayload payload.
type PhotoUpdatedPayload struct {
	EmployeeID string  `json:"employee_id"`
	Handle     *string `json:"handle,omitempty"`
}
