package memodex

import (
	"context"
	"fmt"
	"time"
)

// AssistantService exposes detection, translation, summaries and Q&A.
type AssistantService struct {
	translator translatorUseCase
	summaries  summaryUseCase
	answers    answerUseCase
	obs        *observer
}

// Detect identifies the language of text. It never fails: an unreachable
// detector degrades to {Language: "auto", Confidence: 0}.
func (s *AssistantService) Detect(ctx context.Context, text string) Detection {
	start := time.Now()
	defer func() { s.obs.observe("assistant.detect", start, nil) }()

	return fromInternalDetection(s.translator.Detect(ctx, text))
}

// Translate converts text to targetLang ("en" when empty), returning the
// translated text and the target actually used.
func (s *AssistantService) Translate(ctx context.Context, text, targetLang string) (_ string, _ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("assistant.translate", start, err) }()

	translated, target, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		return "", target, fmt.Errorf("translate: %w", err)
	}
	return translated, target, nil
}

// Summarize condenses text to its first, middle and last sentences once it
// exceeds three sentences. A set targetLang translates the summary
// best-effort.
func (s *AssistantService) Summarize(ctx context.Context, text, targetLang string) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("assistant.summarize", start, err) }()

	out, err := s.summaries.Summarize(ctx, text, targetLang)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return out, nil
}

// Ask answers a question from stored notes, falling back to a fixed message
// when nothing matches.
func (s *AssistantService) Ask(ctx context.Context, question, targetLang string) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("assistant.ask", start, err) }()

	out, err := s.answers.Ask(ctx, question, targetLang)
	if err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}
	return out, nil
}
