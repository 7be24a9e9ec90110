package memodex

import (
	"context"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// --- noteUseCase mock ---

type mockNoteUC struct {
	saveFn func(ctx context.Context, n domain.Note) (string, error)
	listFn func(ctx context.Context, tag string, limit int) ([]domain.Note, error)
}

func (m *mockNoteUC) Save(ctx context.Context, n domain.Note) (string, error) {
	return m.saveFn(ctx, n)
}

func (m *mockNoteUC) List(ctx context.Context, tag string, limit int) ([]domain.Note, error) {
	return m.listFn(ctx, tag, limit)
}

// --- conversationUseCase mock ---

type mockConversationUC struct {
	logFn     func(ctx context.Context, turn domain.Turn) (string, error)
	historyFn func(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)
}

func (m *mockConversationUC) Log(ctx context.Context, turn domain.Turn) (string, error) {
	return m.logFn(ctx, turn)
}

func (m *mockConversationUC) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	return m.historyFn(ctx, sessionID, limit)
}

// --- translatorUseCase mock ---

type mockTranslatorUC struct {
	detectFn    func(ctx context.Context, text string) domain.Detection
	translateFn func(ctx context.Context, text, targetLang string) (string, string, error)
}

func (m *mockTranslatorUC) Detect(ctx context.Context, text string) domain.Detection {
	return m.detectFn(ctx, text)
}

func (m *mockTranslatorUC) Translate(ctx context.Context, text, targetLang string) (string, string, error) {
	return m.translateFn(ctx, text, targetLang)
}

// --- summaryUseCase mock ---

type mockSummaryUC struct {
	summarizeFn func(ctx context.Context, text, targetLang string) (string, error)
}

func (m *mockSummaryUC) Summarize(ctx context.Context, text, targetLang string) (string, error) {
	return m.summarizeFn(ctx, text, targetLang)
}

// --- answerUseCase mock ---

type mockAnswerUC struct {
	askFn func(ctx context.Context, question, targetLang string) (string, error)
}

func (m *mockAnswerUC) Ask(ctx context.Context, question, targetLang string) (string, error) {
	return m.askFn(ctx, question, targetLang)
}
