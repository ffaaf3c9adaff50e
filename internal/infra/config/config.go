package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Generator GeneratorConfig `yaml:"generator"`
	Bundle    BundleConfig    `yaml:"bundle"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	// TrustedProxies lists proxy addresses allowed to set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string        `yaml:"trustedProxies"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains the hosted chat completion endpoint settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
}

// ExtractorConfig bounds page fetching and text extraction.
type ExtractorConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxChars       int           `yaml:"maxChars"`
	InlineMaxChars int           `yaml:"inlineMaxChars"`
	MinChars       int           `yaml:"minChars"`
	MaxBodyBytes   int64         `yaml:"maxBodyBytes"`
	UserAgent      string        `yaml:"userAgent"`
	Cache          CacheConfig   `yaml:"cache"`
}

// CacheConfig selects the optional extraction cache backend.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// GeneratorConfig holds prompt defaults for the generation orchestrator.
type GeneratorConfig struct {
	MaxInputChars  int    `yaml:"maxInputChars"`
	DefaultLang    string `yaml:"defaultLang"`
	DefaultTone    string `yaml:"defaultTone"`
	DefaultLength  string `yaml:"defaultLength"`
	MaxTokensLimit int    `yaml:"maxTokensLimit"`
}

// BundleConfig controls the generate-all fan-out.
type BundleConfig struct {
	Transport   string        `yaml:"transport"`
	SelfBaseURL string        `yaml:"selfBaseUrl"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LoggingConfig selects log level and the optional rotating file sink.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

const (
	TransportHTTP      = "http"
	TransportInProcess = "inprocess"

	CacheBackendMemory = "memory"
	CacheBackendValkey = "valkey"
)

// Load reads configuration from a .env file, a YAML file and environment variables.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_TRUSTED_PROXIES"); v != "" {
		cfg.HTTP.TrustedProxies = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("EXTRACTOR_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Extractor.Timeout = parsed
		}
	}
	if v := os.Getenv("EXTRACTOR_USER_AGENT"); v != "" {
		cfg.Extractor.UserAgent = v
	}
	if v := os.Getenv("EXTRACTOR_CACHE_ENABLED"); v != "" {
		cfg.Extractor.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("EXTRACTOR_CACHE_BACKEND"); v != "" {
		cfg.Extractor.Cache.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("EXTRACTOR_CACHE_ADDR"); v != "" {
		cfg.Extractor.Cache.Addr = v
	}
	if v := os.Getenv("EXTRACTOR_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Extractor.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("GENERATOR_DEFAULT_LANG"); v != "" {
		cfg.Generator.DefaultLang = v
	}
	if v := os.Getenv("BUNDLE_TRANSPORT"); v != "" {
		cfg.Bundle.Transport = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BUNDLE_SELF_BASE_URL"); v != "" {
		cfg.Bundle.SelfBaseURL = v
	}
	if v := os.Getenv("BUNDLE_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Bundle.Concurrency = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 8 * time.Minute,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			BaseURL:     "https://router.huggingface.co/v1",
			Model:       "meta-llama/Llama-3.1-8B-Instruct",
			Timeout:     60 * time.Second,
			Temperature: 0.7,
			MaxTokens:   1500,
		},
		Extractor: ExtractorConfig{
			Timeout:        15 * time.Second,
			MaxChars:       10000,
			InlineMaxChars: 8000,
			MinChars:       50,
			MaxBodyBytes:   5 << 20,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			Cache: CacheConfig{
				Enabled: false,
				Backend: CacheBackendMemory,
				TTL:     30 * time.Minute,
			},
		},
		Generator: GeneratorConfig{
			MaxInputChars:  4000,
			DefaultLang:    "tr",
			DefaultTone:    "profesyonel",
			DefaultLength:  "orta",
			MaxTokensLimit: 4096,
		},
		Bundle: BundleConfig{
			Transport:   TransportHTTP,
			Concurrency: 1,
			Timeout:     90 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if c.Extractor.Timeout <= 0 {
		return errors.New("extractor.timeout must be positive")
	}
	if c.Extractor.MinChars <= 0 {
		return errors.New("extractor.minChars must be positive")
	}
	if c.Extractor.MaxChars <= c.Extractor.MinChars {
		return errors.New("extractor.maxChars must exceed extractor.minChars")
	}
	if c.Extractor.InlineMaxChars <= c.Extractor.MinChars {
		return errors.New("extractor.inlineMaxChars must exceed extractor.minChars")
	}
	if c.Extractor.MaxBodyBytes <= 0 {
		return errors.New("extractor.maxBodyBytes must be positive")
	}
	if c.Extractor.Cache.Enabled {
		switch c.Extractor.Cache.Backend {
		case CacheBackendMemory:
		case CacheBackendValkey:
			if strings.TrimSpace(c.Extractor.Cache.Addr) == "" {
				return errors.New("extractor.cache.addr cannot be empty when the valkey backend is enabled")
			}
		default:
			return fmt.Errorf("extractor.cache.backend %q is not supported", c.Extractor.Cache.Backend)
		}
		if c.Extractor.Cache.TTL < 0 {
			return errors.New("extractor.cache.ttl cannot be negative")
		}
	}
	if c.Generator.MaxInputChars <= 3 {
		return errors.New("generator.maxInputChars must be greater than 3")
	}
	if strings.TrimSpace(c.Generator.DefaultLang) == "" {
		return errors.New("generator.defaultLang cannot be empty")
	}
	if c.Generator.MaxTokensLimit <= 0 {
		return errors.New("generator.maxTokensLimit must be positive")
	}
	switch c.Bundle.Transport {
	case TransportHTTP, TransportInProcess:
	default:
		return fmt.Errorf("bundle.transport %q is not supported", c.Bundle.Transport)
	}
	if c.Bundle.Concurrency <= 0 {
		return errors.New("bundle.concurrency must be positive")
	}
	if c.Bundle.Timeout <= 0 {
		return errors.New("bundle.timeout must be positive")
	}
	return nil
}

// SelfURL returns the base URL the fan-out uses to reach this service's own API.
func (c *Config) SelfURL() string {
	if v := strings.TrimSpace(c.Bundle.SelfBaseURL); v != "" {
		return strings.TrimRight(v, "/")
	}
	addr := c.HTTP.Address
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
