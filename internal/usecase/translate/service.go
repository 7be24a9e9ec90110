// Package translate decides, per caller, whether a gateway failure degrades
// or propagates: detection always degrades, primary translation propagates,
// enrichment keeps the original text.
package translate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/domain"
	logpkg "github.com/lumen-cloud/memodex/internal/logger"
)

// DefaultTarget is used when a request does not name a target language.
const DefaultTarget = "en"

// Service applies the degradation policy over the translation client.
type Service struct {
	client Client
}

// New creates a translation service.
func New(client Client) *Service {
	return &Service{client: client}
}

// Detect identifies the language of text. Every failure degrades to
// {language: "auto", confidence: 0}; this operation never errors.
func (s *Service) Detect(ctx context.Context, text string) domain.Detection {
	det, err := s.client.Detect(ctx, text)
	if err != nil {
		logpkg.FromContext(ctx).Warn("language detection degraded", zap.Error(err))
		return domain.AutoDetection()
	}
	return det
}

// Translate converts text to targetLang (DefaultTarget when empty) and
// returns the translated text with the target actually used. Failures
// surface as domain.ErrTranslation.
func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, string, error) {
	target := targetLang
	if target == "" {
		target = DefaultTarget
	}

	translated, err := s.client.Translate(ctx, text, "auto", target)
	if err != nil {
		return "", target, fmt.Errorf("%w: %w", domain.ErrTranslation, err)
	}
	return translated, target, nil
}

// Enrich best-effort translates text when targetLang is set, keeping the
// original text on any failure.
func (s *Service) Enrich(ctx context.Context, text, targetLang string) string {
	if targetLang == "" {
		return text
	}

	translated, err := s.client.Translate(ctx, text, "auto", targetLang)
	if err != nil {
		logpkg.FromContext(ctx).Warn("enrichment translation skipped",
			zap.String("target", targetLang), zap.Error(err))
		return text
	}
	return translated
}
