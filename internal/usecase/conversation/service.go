// Package conversation keeps the append-only record of user and assistant turns.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// Repository is the turn storage contract consumed by this service.
type Repository interface {
	Create(ctx context.Context, turn domain.Turn) (string, error)
	List(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)
}

// Service logs and replays conversation turns.
type Service struct {
	turns        Repository
	defaultLimit int
	now          func() time.Time
}

// New creates a conversation service. defaultLimit caps History when the
// caller passes no limit.
func New(turns Repository, defaultLimit int) *Service {
	return &Service{turns: turns, defaultLimit: defaultLimit, now: time.Now}
}

// Log validates and persists a turn, returning its assigned id.
func (s *Service) Log(ctx context.Context, turn domain.Turn) (string, error) {
	if strings.TrimSpace(turn.SessionID) == "" {
		return "", fmt.Errorf("log turn: %w: session_id must not be empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(turn.Content) == "" {
		return "", fmt.Errorf("log turn: %w: content must not be empty", domain.ErrInvalidInput)
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = s.now().UTC()
	}

	id, err := s.turns.Create(ctx, turn)
	if err != nil {
		return "", fmt.Errorf("log turn: %w", err)
	}
	return id, nil
}

// History returns turns in insertion order, optionally filtered by session.
// A non-positive limit falls back to the service default.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	turns, err := s.turns.List(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("conversation history: %w", err)
	}
	return turns, nil
}
