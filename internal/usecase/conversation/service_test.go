package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

type mockRepo struct {
	created     []domain.Turn
	listed      []domain.Turn
	lastSession string
	lastLimit   int
	err         error
}

func (m *mockRepo) Create(_ context.Context, turn domain.Turn) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, turn)
	return "turn-1", nil
}

func (m *mockRepo) List(_ context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	m.lastSession = sessionID
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.listed, nil
}

func TestLog_Success(t *testing.T) {
	repo := &mockRepo{}
	s := New(repo, 100)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	id, err := s.Log(context.Background(), domain.Turn{
		SessionID: "sess-1",
		Role:      "user",
		Content:   "what did I save about redis?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "turn-1" {
		t.Errorf("expected turn-1, got %q", id)
	}
	if !repo.created[0].CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at assigned, got %v", repo.created[0].CreatedAt)
	}
}

func TestLog_MissingFieldsRejected(t *testing.T) {
	s := New(&mockRepo{}, 100)

	tests := []struct {
		name string
		turn domain.Turn
	}{
		{"empty session", domain.Turn{Content: "hello"}},
		{"empty content", domain.Turn{SessionID: "sess-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Log(context.Background(), tt.turn); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLog_StoreUnavailable(t *testing.T) {
	s := New(&mockRepo{err: domain.ErrStoreUnavailable}, 100)

	_, err := s.Log(context.Background(), domain.Turn{SessionID: "sess-1", Content: "hi"})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestHistory_DefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	s := New(repo, 100)

	if _, err := s.History(context.Background(), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Errorf("expected default limit 100, got %d", repo.lastLimit)
	}
}

func TestHistory_SessionFilterPassedThrough(t *testing.T) {
	repo := &mockRepo{listed: []domain.Turn{{ID: "t1", SessionID: "sess-2"}}}
	s := New(repo, 100)

	turns, err := s.History(context.Background(), "sess-2", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSession != "sess-2" || repo.lastLimit != 10 {
		t.Errorf("unexpected repo call: session=%q limit=%d", repo.lastSession, repo.lastLimit)
	}
	if len(turns) != 1 {
		t.Errorf("expected 1 turn, got %d", len(turns))
	}
}
