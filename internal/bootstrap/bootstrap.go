package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexova/lexova-backend/internal/config"
	"github.com/lexova/lexova-backend/internal/core/ports"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
	"github.com/lexova/lexova-backend/internal/core/usecase"
	"github.com/lexova/lexova-backend/internal/infrastructure/extractor/doctext"
	"github.com/lexova/lexova-backend/internal/infrastructure/llm/openai"
	"github.com/lexova/lexova-backend/internal/infrastructure/queue/nats"
	"github.com/lexova/lexova-backend/internal/infrastructure/repository/postgres"
	"github.com/lexova/lexova-backend/internal/infrastructure/resilience"
	"github.com/lexova/lexova-backend/internal/infrastructure/storage/localfs"
)

type App struct {
	Config   config.Config
	Taxonomy *taxonomy.Taxonomy

	Queue     ports.MessageQueue
	Matcher   ports.LawyerMatcher
	Assistant ports.CaseAssistant
	Submitter ports.CaseSubmitter
	Analyzer  ports.CaseAnalyzer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	caseRepo := postgres.NewCaseRepository(db)
	if err := caseRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure case schema: %w", err)
	}
	lawyerRepo := postgres.NewLawyerRepository(db)
	if err := lawyerRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure lawyer schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	resilienceCfg := resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: time.Duration(cfg.RetryInitialBackoffMS) * time.Millisecond,
		RetryMaxBackoff:     time.Duration(cfg.RetryMaxBackoffMS) * time.Millisecond,
		BreakerEnabled:      cfg.BreakerEnabled,
		BreakerMinRequests:  uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
		BreakerOpenTimeout:  time.Duration(cfg.BreakerOpenTimeoutSecs) * time.Second,
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilienceCfg, nats.ClassifyError),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	llmClient := openai.New(openai.Config{
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		APIKey:  cfg.LLMAPIKey,
		Timeout: cfg.LLMTimeout(),
	}, resilience.NewExecutor(resilienceCfg, openai.ClassifyError))
	attributeExtractor := openai.NewExtractor(llmClient)
	contentGenerator := openai.NewGenerator(llmClient)

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}

	scorer := usecase.NewScoringEngine(tax, usecase.DefaultCalibration())
	matcher := usecase.NewMatchLawyersUseCase(lawyerRepo, attributeExtractor, scorer, tax, logger)
	assistant := usecase.NewCaseAssistantUseCase(contentGenerator, tax, logger)
	submitter := usecase.NewSubmitCaseUseCase(caseRepo, storage, doctext.NewExtractor(), queue, logger)
	analyzer := usecase.NewAnalyzeCaseUseCase(caseRepo, matcher, assistant)

	return &App{
		Config:   cfg,
		Taxonomy: tax,

		Queue:     queue,
		Matcher:   matcher,
		Assistant: assistant,
		Submitter: submitter,
		Analyzer:  analyzer,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
