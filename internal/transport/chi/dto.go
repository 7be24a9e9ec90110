package chi

import "github.com/lumen-cloud/memodex/internal/domain"

// Request and response bodies. Field names are part of the public API
// contract and must not change.

type textRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang,omitempty"`
}

type questionRequest struct {
	Question   string `json:"question"`
	TargetLang string `json:"target_lang,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type translateResponse struct {
	Translated string `json:"translated"`
	Target     string `json:"target"`
}

type savedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type memoryListResponse struct {
	Items []domain.Note `json:"items"`
}

type conversationListResponse struct {
	Items []domain.Turn `json:"items"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
