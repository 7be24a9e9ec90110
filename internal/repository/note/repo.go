// Package note persists study notes as JSON documents with a per-collection
// id list preserving insertion order.
package note

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// store is the consumer interface for notes (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
}

// Repo implements usecase note storage. The store may be nil when the
// database was never connected; every operation then reports
// domain.ErrStoreUnavailable instead of panicking.
type Repo struct {
	store  store
	prefix string
}

// New creates a note repository. s may be nil.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create inserts a note and returns its store-assigned id.
func (r *Repo) Create(ctx context.Context, n domain.Note) (string, error) {
	if r.store == nil {
		return "", domain.ErrStoreUnavailable
	}

	id := uuid.NewString()
	data, err := encodeNote(n)
	if err != nil {
		return "", fmt.Errorf("marshal note: %w: %w", domain.ErrStoreWrite, err)
	}

	key := docKey(r.prefix, domain.CollectionNotes, id)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return "", fmt.Errorf("json.set %s: %w: %w", key, domain.ErrStoreWrite, err)
	}
	if err := r.store.RPush(ctx, idsKey(r.prefix, domain.CollectionNotes), id); err != nil {
		return "", fmt.Errorf("rpush note id: %w: %w", domain.ErrStoreWrite, err)
	}
	if err := r.store.SAdd(ctx, collectionsKey(r.prefix), domain.CollectionNotes); err != nil {
		return "", fmt.Errorf("sadd collection: %w: %w", domain.ErrStoreWrite, err)
	}

	return id, nil
}

// List returns up to limit notes in insertion order. A non-empty tag keeps
// only notes whose tags contain it.
func (r *Repo) List(ctx context.Context, tag string, limit int) ([]domain.Note, error) {
	return r.scan(ctx, limit, func(n domain.Note) bool {
		return tag == "" || n.HasTag(tag)
	})
}

// SearchAny returns up to limit notes whose content contains any of the
// keywords as a case-insensitive substring. With zero keywords every note
// matches; the caller decides whether that is meaningful.
func (r *Repo) SearchAny(ctx context.Context, keywords []string, limit int) ([]domain.Note, error) {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	return r.scan(ctx, limit, func(n domain.Note) bool {
		if len(lowered) == 0 {
			return true
		}
		content := strings.ToLower(n.Content)
		for _, kw := range lowered {
			if strings.Contains(content, kw) {
				return true
			}
		}
		return false
	})
}

// scan walks the id list in insertion order and collects matching notes.
func (r *Repo) scan(ctx context.Context, limit int, match func(domain.Note) bool) ([]domain.Note, error) {
	if r.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	ids, err := r.store.LRange(ctx, idsKey(r.prefix, domain.CollectionNotes), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange note ids: %w: %w", domain.ErrStoreRead, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(r.prefix, domain.CollectionNotes, id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get notes: %w: %w", domain.ErrStoreRead, err)
	}

	notes := make([]domain.Note, 0, limit)
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		n, err := decodeNote(ids[i], raw)
		if err != nil {
			continue
		}
		if !match(n) {
			continue
		}
		notes = append(notes, n)
		if limit > 0 && len(notes) >= limit {
			break
		}
	}

	return notes, nil
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
