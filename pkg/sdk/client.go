package memodex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/db"
	dbRedis "github.com/lumen-cloud/memodex/internal/db/redis"
	"github.com/lumen-cloud/memodex/internal/domain"
	conversationrepo "github.com/lumen-cloud/memodex/internal/repository/conversation"
	noterepo "github.com/lumen-cloud/memodex/internal/repository/note"
	"github.com/lumen-cloud/memodex/internal/repository/trcache"
	"github.com/lumen-cloud/memodex/internal/transport/libre"
	answeruc "github.com/lumen-cloud/memodex/internal/usecase/answer"
	conversationuc "github.com/lumen-cloud/memodex/internal/usecase/conversation"
	memoryuc "github.com/lumen-cloud/memodex/internal/usecase/memory"
	summaryuc "github.com/lumen-cloud/memodex/internal/usecase/summary"
	translateuc "github.com/lumen-cloud/memodex/internal/usecase/translate"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "memodex:"
	defaultDetectURL        = "https://libretranslate.de/detect"
	defaultTranslateURL     = "https://libretranslate.de/translate"

	defaultMemoryLimit       = 50
	defaultConversationLimit = 100
	defaultAskLimit          = 20
	defaultContextMaxChars   = 2000
)

// Internal interfaces so tests can substitute the use cases.
type noteUseCase interface {
	Save(ctx context.Context, n domain.Note) (string, error)
	List(ctx context.Context, tag string, limit int) ([]domain.Note, error)
}

type conversationUseCase interface {
	Log(ctx context.Context, turn domain.Turn) (string, error)
	History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)
}

type translatorUseCase interface {
	Detect(ctx context.Context, text string) domain.Detection
	Translate(ctx context.Context, text, targetLang string) (string, string, error)
}

type summaryUseCase interface {
	Summarize(ctx context.Context, text, targetLang string) (string, error)
}

type answerUseCase interface {
	Ask(ctx context.Context, question, targetLang string) (string, error)
}

// Client is the memodex SDK entry point.
type Client struct {
	store      db.Store
	notesSvc   noteUseCase
	dialogSvc  conversationUseCase
	trSvc      translatorUseCase
	summarySvc summaryUseCase
	answerSvc  answerUseCase
	obs        *observer
}

// New creates a memodex Client and connects to the database.
// The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:         defaultKeyPrefix,
		detectURL:         defaultDetectURL,
		translateURL:      defaultTranslateURL,
		memoryLimit:       defaultMemoryLimit,
		conversationLimit: defaultConversationLimit,
		askLimit:          defaultAskLimit,
		contextMaxChars:   defaultContextMaxChars,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("memodex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("memodex: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("memodex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	noteRepo := noterepo.New(store, cfg.keyPrefix)
	convRepo := conversationrepo.New(store, cfg.keyPrefix)

	var trClient translateuc.Client = libre.NewClient(&libre.Config{
		DetectURL:    cfg.detectURL,
		TranslateURL: cfg.translateURL,
		Timeout:      cfg.translatorTimeout,
		Logger:       zap.NewNop(),
	})
	if cfg.cacheTTL > 0 {
		trClient = trcache.New(trClient, store, cfg.keyPrefix, cfg.cacheTTL, nil, zap.NewNop())
	}

	trSvc := translateuc.New(trClient)

	return &Client{
		store:      store,
		notesSvc:   memoryuc.New(noteRepo, cfg.memoryLimit),
		dialogSvc:  conversationuc.New(convRepo, cfg.conversationLimit),
		trSvc:      trSvc,
		summarySvc: summaryuc.New(trSvc),
		answerSvc:  answeruc.New(noteRepo, trSvc, cfg.askLimit, cfg.contextMaxChars),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Notes returns the note service.
func (c *Client) Notes() *NoteService {
	return &NoteService{svc: c.notesSvc, obs: c.obs}
}

// Conversations returns the conversation log service.
func (c *Client) Conversations() *ConversationService {
	return &ConversationService{svc: c.dialogSvc, obs: c.obs}
}

// Assistant returns the detection, translation, summary and Q&A service.
func (c *Client) Assistant() *AssistantService {
	return &AssistantService{
		translator: c.trSvc,
		summaries:  c.summarySvc,
		answers:    c.answerSvc,
		obs:        c.obs,
	}
}
