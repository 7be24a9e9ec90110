package memodex

import (
	"context"
	"fmt"
	"time"
)

// ConversationService appends to and replays the conversation log.
type ConversationService struct {
	svc conversationUseCase
	obs *observer
}

// Log persists a turn and returns its assigned id.
func (s *ConversationService) Log(ctx context.Context, t Turn) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("conversation.log", start, err) }()

	id, err := s.svc.Log(ctx, toInternalTurn(t))
	if err != nil {
		return "", fmt.Errorf("log turn: %w", err)
	}
	return id, nil
}

// History returns turns in insertion order. A non-empty sessionID filters by
// session; a non-positive limit uses the client default.
func (s *ConversationService) History(ctx context.Context, sessionID string, limit int) (_ []Turn, err error) {
	start := time.Now()
	defer func() { s.obs.observe("conversation.history", start, err) }()

	internal, err := s.svc.History(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("conversation history: %w", err)
	}

	turns := make([]Turn, len(internal))
	for i, t := range internal {
		turns[i] = fromInternalTurn(t)
	}
	return turns, nil
}
