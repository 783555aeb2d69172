package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/repository"
)

// PersisterService writes the board to the store after every change and logs
// the remaining board events.
type PersisterService struct {
	dispatcher events.Dispatcher
	store      repository.BoardRepository
	logger     *zap.Logger
}

// NewPersisterService creates the service.
func NewPersisterService(dispatcher events.Dispatcher, store repository.BoardRepository, logger *zap.Logger) *PersisterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersisterService{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (p *PersisterService) RegisterHandlers() {
	if p.dispatcher == nil {
		return
	}
	p.dispatcher.Subscribe(events.EventBoardChanged, p.handleBoardChanged)
	p.dispatcher.Subscribe(events.EventScenarioLoaded, p.handleBoardChanged)
	p.dispatcher.Subscribe(events.EventBoardReset, p.logEvent)
	p.dispatcher.Subscribe(events.EventScenarioSaved, p.logEvent)
	p.dispatcher.Subscribe(events.EventScenarioDeleted, p.logEvent)
	p.dispatcher.Subscribe(events.EventPhotoUpdated, p.logEvent)
}

func (p *PersisterService) handleBoardChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BoardChangedPayload)
	if !ok || payload.Board == nil {
		return fmt.Errorf("event %s: unexpected payload %T", event.Type, event.Payload)
	}
	if p.store == nil {
		return nil
	}
	if err := p.store.Save(ctx, payload.Board); err != nil {
		p.logger.Error("persist board failed",
			zap.String("event_id", event.ID),
			zap.String("command_kind", payload.CommandKind),
			zap.Error(err))
		return err
	}
	p.logger.Debug("board persisted",
		zap.String("event_id", event.ID),
		zap.String("command_kind", payload.CommandKind),
		zap.String("actor", event.Actor))
	return nil
}

func (p *PersisterService) logEvent(_ context.Context, event events.Event) error {
	p.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("actor", event.Actor),
		zap.Any("payload", summarizePayload(event.Payload)))
	return nil
}

// summarizePayload keeps whole boards out of the log.
func summarizePayload(payload any) any {
	if p, ok := payload.(events.BoardChangedPayload); ok {
		return map[string]any{"command_kind": p.CommandKind}
	}
	return payload
}
