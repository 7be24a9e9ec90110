package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiv5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/domain"
	answeruc "github.com/lumen-cloud/memodex/internal/usecase/answer"
	conversationuc "github.com/lumen-cloud/memodex/internal/usecase/conversation"
	diagnosticsuc "github.com/lumen-cloud/memodex/internal/usecase/diagnostics"
	memoryuc "github.com/lumen-cloud/memodex/internal/usecase/memory"
	summaryuc "github.com/lumen-cloud/memodex/internal/usecase/summary"
	translateuc "github.com/lumen-cloud/memodex/internal/usecase/translate"
)

// fakeNotes is an in-memory note store serving both the memory service and
// the answer retriever.
type fakeNotes struct {
	notes []domain.Note
	err   error
}

func (f *fakeNotes) Create(_ context.Context, n domain.Note) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	n.ID = fmt.Sprintf("note-%d", len(f.notes)+1)
	f.notes = append(f.notes, n)
	return n.ID, nil
}

func (f *fakeNotes) List(_ context.Context, tag string, limit int) ([]domain.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Note
	for _, n := range f.notes {
		if tag != "" && !n.HasTag(tag) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotes) SearchAny(_ context.Context, keywords []string, limit int) ([]domain.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Note
	for _, n := range f.notes {
		if !matchesAny(n.Content, keywords) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matchesAny(content string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lowered := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// fakeTurns is an in-memory conversation log.
type fakeTurns struct {
	turns []domain.Turn
	err   error
}

func (f *fakeTurns) Create(_ context.Context, turn domain.Turn) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	turn.ID = fmt.Sprintf("turn-%d", len(f.turns)+1)
	f.turns = append(f.turns, turn)
	return turn.ID, nil
}

func (f *fakeTurns) List(_ context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Turn
	for _, turn := range f.turns {
		if sessionID != "" && turn.SessionID != sessionID {
			continue
		}
		out = append(out, turn)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// fakeTranslator stands in for the external detection/translation service.
type fakeTranslator struct {
	detection domain.Detection
	detectErr error
	prefix    string
	trErr     error
}

func (f *fakeTranslator) Detect(_ context.Context, _ string) (domain.Detection, error) {
	if f.detectErr != nil {
		return domain.Detection{}, f.detectErr
	}
	return f.detection, nil
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	if f.trErr != nil {
		return "", f.trErr
	}
	return f.prefix + "[" + target + "] " + text, nil
}

// fakeProbe reports a healthy store.
type fakeProbe struct {
	pingErr    error
	members    []string
	membersErr error
}

func (f *fakeProbe) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeProbe) SMembers(_ context.Context, _ string) ([]string, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.members, nil
}

// testEnv bundles the server with its fakes so tests can seed state.
type testEnv struct {
	srv        *httptest.Server
	notes      *fakeNotes
	turns      *fakeTurns
	translator *fakeTranslator
	probe      *fakeProbe
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		notes:      &fakeNotes{},
		turns:      &fakeTurns{},
		translator: &fakeTranslator{detection: domain.Detection{Language: "en", Confidence: 0.9}},
		probe:      &fakeProbe{members: []string{"memorynote"}},
	}

	trSvc := translateuc.New(env.translator)
	server := NewServer(
		trSvc,
		summaryuc.New(trSvc),
		answeruc.New(env.notes, trSvc, 20, 2000),
		memoryuc.New(env.notes, 50),
		conversationuc.New(env.turns, 100),
		diagnosticsuc.New(env.probe, "memodex:collections", true, true),
		zap.NewNop(),
	)

	r := chiv5.NewRouter()
	server.Register(r)
	env.srv = httptest.NewServer(r)
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(e.srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(e.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode response %s: %v", data, err)
	}
	return v
}
