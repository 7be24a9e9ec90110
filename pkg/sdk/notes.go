package memodex

import (
	"context"
	"fmt"
	"time"
)

// NoteService stores and lists study notes.
type NoteService struct {
	svc noteUseCase
	obs *observer
}

// Save persists a note and returns its assigned id.
func (s *NoteService) Save(ctx context.Context, n Note) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("note.save", start, err) }()

	id, err := s.svc.Save(ctx, toInternalNote(n))
	if err != nil {
		return "", fmt.Errorf("save note: %w", err)
	}
	return id, nil
}

// List returns notes in insertion order. A non-empty tag filters by tag
// membership; a non-positive limit uses the client default.
func (s *NoteService) List(ctx context.Context, tag string, limit int) (_ []Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("note.list", start, err) }()

	internal, err := s.svc.List(ctx, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]Note, len(internal))
	for i, n := range internal {
		notes[i] = fromInternalNote(n)
	}
	return notes, nil
}
