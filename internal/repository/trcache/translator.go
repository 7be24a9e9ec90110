// Package trcache caches detection and translation results in a key-value
// store, sparing repeat calls to the external endpoints.
package trcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/db"
	"github.com/lumen-cloud/memodex/internal/domain"
)

// translator is the inner client contract.
type translator interface {
	Detect(ctx context.Context, text string) (domain.Detection, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// store is the consumer interface for the translation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedTranslator caches detections and translations with a TTL. Cache
// failures degrade to the inner client, never to the caller.
type CachedTranslator struct {
	inner      translator
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner translator,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedTranslator {
	return &CachedTranslator{
		inner:      inner,
		store:      s,
		prefix:     keyPrefix + "tr_cache:",
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Detect returns a cached detection or calls the inner client.
func (c *CachedTranslator) Detect(ctx context.Context, text string) (domain.Detection, error) {
	key := c.cacheKey("detect", text)

	if data, ok := c.getFromCache(ctx, key); ok {
		var det domain.Detection
		if err := json.Unmarshal(data, &det); err == nil {
			c.incCache("hit")
			return det, nil
		}
		c.logger.Warn("Failed to parse cached detection", zap.String("key", key))
	}

	c.incCache("miss")

	det, err := c.inner.Detect(ctx, text)
	if err != nil {
		return domain.Detection{}, fmt.Errorf("detect language: %w", err)
	}

	if data, err := json.Marshal(det); err == nil {
		c.putToCache(ctx, key, data)
	}
	return det, nil
}

// Translate returns a cached translation or calls the inner client.
func (c *CachedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := c.cacheKey("translate", source+"\x00"+target+"\x00"+text)

	if data, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return string(data), nil
	}

	c.incCache("miss")

	translated, err := c.inner.Translate(ctx, text, source, target)
	if err != nil {
		return "", fmt.Errorf("translate text: %w", err)
	}

	c.putToCache(ctx, key, []byte(translated))
	return translated, nil
}

func (c *CachedTranslator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedTranslator) cacheKey(operation, payload string) string {
	h := sha256.Sum256([]byte(operation + "\x00" + payload))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedTranslator) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached translation", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CachedTranslator) putToCache(ctx context.Context, key string, data []byte) {
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache translation", zap.String("key", key), zap.Error(err))
	}
}
