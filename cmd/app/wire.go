//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/cspark/internal/bootstrap"
	"github.com/yanqian/cspark/internal/domain/bundle"
	"github.com/yanqian/cspark/internal/domain/extractor"
	"github.com/yanqian/cspark/internal/domain/generator"
	"github.com/yanqian/cspark/internal/infra/config"
	"github.com/yanqian/cspark/internal/infra/llm/chatgpt"
	"github.com/yanqian/cspark/internal/infra/webpage"
	httpiface "github.com/yanqian/cspark/internal/interface/http"
	"github.com/yanqian/cspark/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		provideLoggerOptions,
		logger.New,
		provideMetricsRegistry,
		provideMetricsRecorder,
		provideChatGPTClient,
		provideExtractorConfig,
		providePageFetcher,
		provideExtractCache,
		provideGeneratorConfig,
		provideBundleConfig,
		provideTaskGenerator,
		extractor.NewService,
		generator.NewService,
		bundle.NewService,
		wire.Bind(new(extractor.PageFetcher), new(*webpage.Fetcher)),
		wire.Bind(new(generator.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
