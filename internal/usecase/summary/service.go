// Package summary produces extractive summaries without calling any model:
// long texts are cut down to their first, middle and last sentences.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// keepSentences is the length, in sentences, below which text is returned verbatim.
const keepSentences = 3

// Enricher optionally translates the finished summary.
type Enricher interface {
	Enrich(ctx context.Context, text, targetLang string) string
}

// Service produces summaries and optionally translates them.
type Service struct {
	enricher Enricher
}

// New creates a summary service. enricher may be nil.
func New(enricher Enricher) *Service {
	return &Service{enricher: enricher}
}

// Summarize condenses text and, when targetLang is set, best-effort
// translates the result.
func (s *Service) Summarize(ctx context.Context, text, targetLang string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("summarize: %w: text must not be empty", domain.ErrInvalidInput)
	}

	out := Extract(text, keepSentences)
	if s.enricher != nil && targetLang != "" {
		out = s.enricher.Enrich(ctx, out, targetLang)
	}
	return out, nil
}
