package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the memodex API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Translator TranslatorConfig `yaml:"translator"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds document store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Name             string   `yaml:"name"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TranslatorConfig holds the external LibreTranslate-compatible endpoints.
// The original service carried a summarize_url setting that its logic never
// consulted; it is accepted here for config compatibility.
type TranslatorConfig struct {
	DetectURL    string `yaml:"detect_url"`
	TranslateURL string `yaml:"translate_url"`
	SummarizeURL string `yaml:"summarize_url"`
	TimeoutSec   int    `yaml:"timeout_sec"`
	CacheTTLSec  int    `yaml:"cache_ttl_sec"` // 0 disables the translation cache
}

// RetrievalConfig holds listing and keyword-retrieval limits.
type RetrievalConfig struct {
	MemoryLimit       int `yaml:"memory_limit"`
	ConversationLimit int `yaml:"conversation_limit"`
	AskLimit          int `yaml:"ask_limit"`
	ContextMaxChars   int `yaml:"context_max_chars"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values. Database addrs left
// empty by env expansion are dropped so an unset ${DATABASE_URL} reads as
// "no store configured" rather than a blank address.
func (c *Config) ApplyDefaults() {
	addrs := c.Database.Addrs[:0]
	for _, addr := range c.Database.Addrs {
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}
	c.Database.Addrs = addrs
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Translator.DetectURL == "" {
		c.Translator.DetectURL = "https://libretranslate.de/detect"
	}
	if c.Translator.TranslateURL == "" {
		c.Translator.TranslateURL = "https://libretranslate.de/translate"
	}
	if c.Translator.TimeoutSec <= 0 {
		c.Translator.TimeoutSec = 8
	}
	if c.Retrieval.MemoryLimit <= 0 {
		c.Retrieval.MemoryLimit = 50
	}
	if c.Retrieval.ConversationLimit <= 0 {
		c.Retrieval.ConversationLimit = 100
	}
	if c.Retrieval.AskLimit <= 0 {
		c.Retrieval.AskLimit = 20
	}
	if c.Retrieval.ContextMaxChars <= 0 {
		c.Retrieval.ContextMaxChars = 2000
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "memodex:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !strings.HasPrefix(c.Translator.DetectURL, "http") {
		return fmt.Errorf("translator.detect_url must be an http(s) URL, got %q", c.Translator.DetectURL)
	}
	if !strings.HasPrefix(c.Translator.TranslateURL, "http") {
		return fmt.Errorf("translator.translate_url must be an http(s) URL, got %q", c.Translator.TranslateURL)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
