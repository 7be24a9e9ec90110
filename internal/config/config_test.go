package config

import (
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_BadTranslatorURL(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8000
	cfg.Translator.DetectURL = "ftp://example.com/detect"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http detect URL")
	}
}

// The store is optional: the service starts degraded without database.addrs,
// so Validate must not require them.
func TestValidate_NoDatabaseAddrsAllowed(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 8000

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Translator.DetectURL != "https://libretranslate.de/detect" {
		t.Errorf("unexpected detect URL: %q", cfg.Translator.DetectURL)
	}
	if cfg.Translator.TranslateURL != "https://libretranslate.de/translate" {
		t.Errorf("unexpected translate URL: %q", cfg.Translator.TranslateURL)
	}
	if cfg.Translator.TimeoutSec != 8 {
		t.Errorf("unexpected translator timeout: %d", cfg.Translator.TimeoutSec)
	}
	if cfg.Retrieval.MemoryLimit != 50 {
		t.Errorf("unexpected memory limit: %d", cfg.Retrieval.MemoryLimit)
	}
	if cfg.Retrieval.ConversationLimit != 100 {
		t.Errorf("unexpected conversation limit: %d", cfg.Retrieval.ConversationLimit)
	}
	if cfg.Retrieval.AskLimit != 20 {
		t.Errorf("unexpected ask limit: %d", cfg.Retrieval.AskLimit)
	}
	if cfg.Retrieval.ContextMaxChars != 2000 {
		t.Errorf("unexpected context max chars: %d", cfg.Retrieval.ContextMaxChars)
	}
	if cfg.Storage.KeyPrefix != "memodex:" {
		t.Errorf("unexpected key prefix: %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Retrieval.AskLimit = 7
	cfg.Translator.CacheTTLSec = 3600
	cfg.ApplyDefaults()

	if cfg.Retrieval.AskLimit != 7 {
		t.Errorf("explicit ask limit overwritten: %d", cfg.Retrieval.AskLimit)
	}
	if cfg.Translator.CacheTTLSec != 3600 {
		t.Errorf("explicit cache TTL overwritten: %d", cfg.Translator.CacheTTLSec)
	}
}

func TestApplyDefaults_DropsEmptyAddrs(t *testing.T) {
	cfg := Config{}
	cfg.Database.Addrs = []string{""}
	cfg.ApplyDefaults()

	if len(cfg.Database.Addrs) != 0 {
		t.Errorf("expected empty addrs dropped, got %v", cfg.Database.Addrs)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MEMODEX_TEST_PORT", "9001")

	out := expandEnvVars([]byte("port: ${MEMODEX_TEST_PORT}\nname: ${MEMODEX_TEST_MISSING:-studydb}\n"))
	want := "port: 9001\nname: studydb\n"
	if string(out) != want {
		t.Errorf("expandEnvVars = %q, want %q", out, want)
	}
}

func TestExpandEnvVars_EmptyWithoutDefault(t *testing.T) {
	out := expandEnvVars([]byte("password: ${MEMODEX_TEST_ABSENT}"))
	if string(out) != "password: " {
		t.Errorf("expandEnvVars = %q", out)
	}
}
