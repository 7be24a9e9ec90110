// Package conversation persists the append-only conversation log.
package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// store is the consumer interface for conversation turns (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
}

// Repo implements usecase conversation storage. The store may be nil when the
// database was never connected.
type Repo struct {
	store  store
	prefix string
}

// New creates a conversation repository. s may be nil.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create appends a turn to the log and returns its store-assigned id.
func (r *Repo) Create(ctx context.Context, turn domain.Turn) (string, error) {
	if r.store == nil {
		return "", domain.ErrStoreUnavailable
	}

	id := uuid.NewString()
	data, err := encodeTurn(turn)
	if err != nil {
		return "", fmt.Errorf("marshal turn: %w: %w", domain.ErrStoreWrite, err)
	}

	key := docKey(r.prefix, domain.CollectionTurns, id)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return "", fmt.Errorf("json.set %s: %w: %w", key, domain.ErrStoreWrite, err)
	}
	if err := r.store.RPush(ctx, idsKey(r.prefix, domain.CollectionTurns), id); err != nil {
		return "", fmt.Errorf("rpush turn id: %w: %w", domain.ErrStoreWrite, err)
	}
	if err := r.store.SAdd(ctx, collectionsKey(r.prefix), domain.CollectionTurns); err != nil {
		return "", fmt.Errorf("sadd collection: %w: %w", domain.ErrStoreWrite, err)
	}

	return id, nil
}

// List returns up to limit turns in insertion order. A non-empty sessionID
// keeps only turns of that session.
func (r *Repo) List(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if r.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	ids, err := r.store.LRange(ctx, idsKey(r.prefix, domain.CollectionTurns), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange turn ids: %w: %w", domain.ErrStoreRead, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(r.prefix, domain.CollectionTurns, id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get turns: %w: %w", domain.ErrStoreRead, err)
	}

	turns := make([]domain.Turn, 0, limit)
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		turn, err := decodeTurn(ids[i], raw)
		if err != nil {
			continue
		}
		if sessionID != "" && turn.SessionID != sessionID {
			continue
		}
		turns = append(turns, turn)
		if limit > 0 && len(turns) >= limit {
			break
		}
	}

	return turns, nil
}

func docKey(prefix, collection, id string) string {
	return fmt.Sprintf("%s%s:%s", prefix, collection, id)
}

func idsKey(prefix, collection string) string {
	return fmt.Sprintf("%s%s:ids", prefix, collection)
}

func collectionsKey(prefix string) string {
	return prefix + "collections"
}
