package memodex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	keyPrefix string

	detectURL         string
	translateURL      string
	translatorTimeout time.Duration
	cacheTTL          time.Duration

	memoryLimit       int
	conversationLimit int
	askLimit          int
	contextMaxChars   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis or Valkey instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the key prefix shared with the API server.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTranslator points detection and translation at a LibreTranslate-
// compatible deployment.
func WithTranslator(detectURL, translateURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.detectURL = detectURL
		c.translateURL = translateURL
	})
}

// WithTranslatorTimeout bounds every outbound translator call.
func WithTranslatorTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.translatorTimeout = timeout
	})
}

// WithTranslationCache caches detection and translation results in the store
// for ttl. Zero disables caching.
func WithTranslationCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLimits overrides the default listing and retrieval limits.
func WithLimits(memory, conversation, ask int) Option {
	return optionFunc(func(c *clientConfig) {
		c.memoryLimit = memory
		c.conversationLimit = conversation
		c.askLimit = ask
	})
}

// WithLogger enables operation logging.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = logger
	})
}

// WithMetrics registers SDK operation metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
