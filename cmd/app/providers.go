package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/cspark/internal/domain/bundle"
	"github.com/yanqian/cspark/internal/domain/extractor"
	"github.com/yanqian/cspark/internal/domain/generator"
	"github.com/yanqian/cspark/internal/infra/config"
	"github.com/yanqian/cspark/internal/infra/csparkapi"
	"github.com/yanqian/cspark/internal/infra/extractcache"
	"github.com/yanqian/cspark/internal/infra/llm/chatgpt"
	"github.com/yanqian/cspark/internal/infra/webpage"
	"github.com/yanqian/cspark/pkg/logger"
	"github.com/yanqian/cspark/pkg/metrics"
)

func provideLoggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
}

func provideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetricsRecorder(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.NewRecorder(reg)
}

func provideChatGPTClient(cfg *config.Config) *chatgpt.Client {
	return chatgpt.NewClient(chatgpt.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	})
}

func provideExtractorConfig(cfg *config.Config) extractor.Config {
	return extractor.Config{
		MaxChars: cfg.Extractor.MaxChars,
		MinChars: cfg.Extractor.MinChars,
		CacheTTL: cfg.Extractor.Cache.TTL,
	}
}

func providePageFetcher(cfg *config.Config) *webpage.Fetcher {
	return webpage.NewFetcher(cfg.Extractor.UserAgent, cfg.Extractor.Timeout, cfg.Extractor.MaxBodyBytes)
}

func provideExtractCache(cfg *config.Config, logger *slog.Logger) extractor.Cache {
	cacheCfg := cfg.Extractor.Cache
	if !cacheCfg.Enabled {
		return nil
	}
	if cacheCfg.Backend == config.CacheBackendValkey {
		opt, err := buildValkeyOptions(cacheCfg.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return extractcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return extractcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
			return extractcache.NewMemoryStore()
		}
		logger.Info("extraction valkey cache enabled", "addr", cacheCfg.Addr)
		return extractcache.NewValkeyStore(client, "cspark:extract")
	}
	logger.Info("extraction memory cache enabled", "ttl", cacheCfg.TTL)
	return extractcache.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideGeneratorConfig(cfg *config.Config) generator.Config {
	return generator.Config{
		Model:              cfg.LLM.Model,
		MaxInputChars:      cfg.Generator.MaxInputChars,
		InlineMaxChars:     cfg.Extractor.InlineMaxChars,
		DefaultLang:        cfg.Generator.DefaultLang,
		DefaultTone:        cfg.Generator.DefaultTone,
		DefaultLength:      cfg.Generator.DefaultLength,
		DefaultMaxTokens:   cfg.LLM.MaxTokens,
		MaxTokensLimit:     cfg.Generator.MaxTokensLimit,
		DefaultTemperature: cfg.LLM.Temperature,
	}
}

func provideBundleConfig(cfg *config.Config) bundle.Config {
	return bundle.Config{
		DefaultLang: cfg.Generator.DefaultLang,
		Concurrency: cfg.Bundle.Concurrency,
		Timeout:     cfg.Bundle.Timeout,
	}
}

// provideTaskGenerator picks how generate-all reaches the generator.
func provideTaskGenerator(cfg *config.Config, svc generator.Service, logger *slog.Logger) bundle.TaskGenerator {
	if cfg.Bundle.Transport == config.TransportInProcess {
		logger.Info("bundle uses in-process generator")
		return svc
	}
	base := cfg.SelfURL()
	logger.Info("bundle uses http generator", "base_url", base)
	return csparkapi.NewClient(base, cfg.Bundle.Timeout)
}
