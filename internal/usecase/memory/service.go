// Package memory validates and stores study notes.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// Repository is the note storage contract consumed by this service.
type Repository interface {
	Create(ctx context.Context, n domain.Note) (string, error)
	List(ctx context.Context, tag string, limit int) ([]domain.Note, error)
}

// Service stores and lists notes.
type Service struct {
	notes        Repository
	defaultLimit int
	now          func() time.Time
}

// New creates a memory service. defaultLimit caps List when the caller
// passes no limit.
func New(notes Repository, defaultLimit int) *Service {
	return &Service{notes: notes, defaultLimit: defaultLimit, now: time.Now}
}

// Save validates and persists a note, returning its assigned id.
func (s *Service) Save(ctx context.Context, n domain.Note) (string, error) {
	if strings.TrimSpace(n.Content) == "" {
		return "", fmt.Errorf("save note: %w: content must not be empty", domain.ErrInvalidInput)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	id, err := s.notes.Create(ctx, n)
	if err != nil {
		return "", fmt.Errorf("save note: %w", err)
	}
	return id, nil
}

// List returns notes in insertion order, optionally filtered by tag.
// A non-positive limit falls back to the service default.
func (s *Service) List(ctx context.Context, tag string, limit int) ([]domain.Note, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	notes, err := s.notes.List(ctx, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
