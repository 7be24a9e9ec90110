package note

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	rpushFn        func(ctx context.Context, key string, values ...string) error
	lrangeFn       func(ctx context.Context, key string, start, stop int64) ([]string, error)
	saddFn         func(ctx context.Context, key string, members ...string) error
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "memodex:"), ms
}

// seedStore wires a mockStore to serve the given notes in insertion order.
func seedStore(t *testing.T, ms *mockStore, notes map[string]domain.Note, order []string) {
	t.Helper()

	ms.lrangeFn = func(_ context.Context, _ string, _, _ int64) ([]string, error) {
		return order, nil
	}
	ms.jsonGetMultiFn = func(_ context.Context, keys []string) ([][]byte, error) {
		out := make([][]byte, len(keys))
		for i, id := range order {
			n, ok := notes[id]
			if !ok {
				continue
			}
			data, err := encodeNote(n)
			if err != nil {
				t.Fatalf("encodeNote: %v", err)
			}
			out[i] = data
		}
		return out, nil
	}
}

func mustDecode(t *testing.T, id string, data []byte) domain.Note {
	t.Helper()
	n, err := decodeNote(id, data)
	if err != nil {
		t.Fatalf("decodeNote: %v", err)
	}
	return n
}

func asJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
