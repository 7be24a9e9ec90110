package libre

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterTranslationMetrics()
	os.Exit(m.Run())
}

func newTestClient(detectURL, translateURL string) *Client {
	return NewClient(&Config{
		DetectURL:    detectURL,
		TranslateURL: translateURL,
		Timeout:      2 * time.Second,
		Logger:       zap.NewNop(),
	})
}

func TestDetect_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("q"); got != "bonjour le monde" {
			t.Errorf("unexpected q: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"language":"fr","confidence":0.92}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	det, err := c.Detect(context.Background(), "bonjour le monde")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Language != "fr" {
		t.Errorf("expected fr, got %q", det.Language)
	}
	if det.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %f", det.Confidence)
	}
}

func TestDetect_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	if _, err := c.Detect(context.Background(), "hmm"); err == nil {
		t.Fatal("expected error for empty detection response")
	}
}

func TestDetect_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	if _, err := c.Detect(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for malformed detection response")
	}
}

func TestDetect_NetworkError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1")
	if _, err := c.Detect(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestTranslate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("source"); got != "auto" {
			t.Errorf("unexpected source: %q", got)
		}
		if got := r.PostForm.Get("target"); got != "es" {
			t.Errorf("unexpected target: %q", got)
		}
		_, _ = w.Write([]byte(`{"translatedText":"hola mundo"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	out, err := c.Translate(context.Background(), "hello world", "auto", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "hola mundo" {
		t.Errorf("expected hola mundo, got %q", out)
	}
}

// A parseable response without translatedText keeps the original text, per
// the upstream API contract.
func TestTranslate_MissingFieldKeepsOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"unsupported language"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	out, err := c.Translate(context.Background(), "hello world", "auto", "xx")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "hello world" {
		t.Errorf("expected original text back, got %q", out)
	}
}

func TestTranslate_NetworkError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1")
	if _, err := c.Translate(context.Background(), "hello", "auto", "en"); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestTranslate_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	if _, err := c.Translate(context.Background(), "hello", "auto", "en"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
