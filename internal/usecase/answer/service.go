// Package answer builds keyword-grounded answers from stored notes. There is
// no model behind it: matching notes are stitched into a context block and
// condensed with the extractive summarizer.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/domain"
	logpkg "github.com/lumen-cloud/memodex/internal/logger"
	"github.com/lumen-cloud/memodex/internal/usecase/summary"
)

// minKeywordLen is the exclusive length floor for question tokens; shorter
// words are treated as stopwords.
const minKeywordLen = 3

// answerPrefix and fallbackAnswer are part of the response contract.
const (
	answerPrefix   = "Based on your saved notes, here's what seems relevant:\n"
	fallbackAnswer = "I couldn't find related notes yet. Try saving key facts first, or ask a more specific question."
)

// ContextSource finds notes matching any of the keywords.
type ContextSource interface {
	SearchAny(ctx context.Context, keywords []string, limit int) ([]domain.Note, error)
}

// Enricher optionally translates the finished answer.
type Enricher interface {
	Enrich(ctx context.Context, text, targetLang string) string
}

// Service answers questions over stored notes.
type Service struct {
	notes           ContextSource
	enricher        Enricher
	limit           int
	contextMaxChars int
}

// New creates an answer service. enricher may be nil.
func New(notes ContextSource, enricher Enricher, limit, contextMaxChars int) *Service {
	return &Service{
		notes:           notes,
		enricher:        enricher,
		limit:           limit,
		contextMaxChars: contextMaxChars,
	}
}

// Ask answers a question from stored notes. Retrieval failures degrade to
// the fallback answer; only an empty question is an error.
func (s *Service) Ask(ctx context.Context, question, targetLang string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("ask: %w: question must not be empty", domain.ErrInvalidInput)
	}

	notes, err := s.notes.SearchAny(ctx, Keywords(question), s.limit)
	if err != nil {
		logpkg.FromContext(ctx).Warn("note retrieval degraded", zap.Error(err))
		notes = nil
	}

	out := s.compose(notes)
	if s.enricher != nil && targetLang != "" {
		out = s.enricher.Enrich(ctx, out, targetLang)
	}
	return out, nil
}

// Keywords extracts the lowercased question tokens longer than three
// characters. A question of only short words yields no keywords, which the
// retrieval layer treats as match-everything.
func Keywords(question string) []string {
	var keywords []string
	for _, word := range strings.Fields(question) {
		if len([]rune(word)) > minKeywordLen {
			keywords = append(keywords, strings.ToLower(word))
		}
	}
	return keywords
}

// compose joins note contents into a capped context block and condenses it.
func (s *Service) compose(notes []domain.Note) string {
	if len(notes) == 0 {
		return fallbackAnswer
	}

	contents := make([]string, len(notes))
	for i, n := range notes {
		contents[i] = n.Content
	}
	context := strings.Join(contents, "\n")
	if runes := []rune(context); len(runes) > s.contextMaxChars {
		context = string(runes[:s.contextMaxChars])
	}

	return answerPrefix + context + "\n\nIn summary: " + summary.Extract(context, 2)
}
