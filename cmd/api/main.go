package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/config"
	_ "github.com/Panorama-Block/zico-agents-sub000/docs" // Swagger docs
	"github.com/Panorama-Block/zico-agents-sub000/internal/agent"
	chatUC "github.com/Panorama-Block/zico-agents-sub000/internal/chat/usecase"
	"github.com/Panorama-Block/zico-agents-sub000/internal/httpserver"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/internal/window"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/dca"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/lending"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/repository"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/staking"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/swap"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/datemath"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/gateway"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/gcalendar"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/llmprovider"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/qdrant"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/voyage"
)

// @title       Zico Agents API
// @description Intent routing and slot filling for a conversational DeFi agent.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Zico Agents...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider manager
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize LLM providers: %v", err)
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      duration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: duration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)

	// 4. Workflow state store: gateway-backed with in-memory fallback
	memoryRepo := repository.NewMemory()
	var workflowRepo repository.IRepository = memoryRepo
	if cfg.Gateway.URL != "" {
		gatewayClient, gwErr := gateway.NewClient(gateway.Config{
			BaseURL:           cfg.Gateway.URL,
			AccessToken:       cfg.Gateway.AccessToken,
			Tenant:            cfg.Gateway.Tenant,
			RequestsPerSecond: cfg.Gateway.RequestsPerSecond,
		})
		if gwErr != nil {
			logger.Warnf(ctx, "Gateway client unavailable, workflow state is in-memory only: %v", gwErr)
		} else {
			workflowRepo = repository.NewFallback(repository.NewGateway(gatewayClient), memoryRepo, logger)
			logger.Info(ctx, "Workflow state persisted via data gateway")
		}
	} else {
		logger.Warn(ctx, "GATEWAY_URL not set, workflow state is in-memory only")
	}

	// 5. Embedding-based intent classifier
	var embedder voyage.IVoyage
	if cfg.Voyage.APIKey != "" {
		voyageClient, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage API unavailable: %v", vErr)
		} else {
			embedder = voyageClient
		}
	}
	classifier := router.NewClassifier(embedder, router.ClassifierConfig{
		CacheSize: cfg.Router.CacheSize,
		CacheTTL:  duration(cfg.Router.CacheTTL, 10*time.Minute),
	}, logger)
	if embedder != nil {
		if warmErr := classifier.Warm(ctx); warmErr != nil {
			logger.Warnf(ctx, "Classifier warm-up failed, routing degrades to fallback chain: %v", warmErr)
		}
	} else {
		logger.Warn(ctx, "VOYAGE_API_KEY not set, routing degrades to fallback chain")
	}

	intentRouter := router.New(classifier, llmManager, logger)

	// 6. Date parsing for recurring-purchase schedules
	timezone := cfg.GoogleCalendar.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	dateParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
	}

	// 7. Strategy retriever: vector search with keyword fallback
	var retriever dca.Retriever = dca.KeywordRetriever{}
	if embedder != nil && cfg.Qdrant.URL != "" {
		vectorRetriever := dca.NewVectorRetriever(embedder, qdrant.NewClient(cfg.Qdrant.URL), logger)
		if warmErr := vectorRetriever.Warm(ctx); warmErr != nil {
			logger.Warnf(ctx, "Strategy index warm-up failed, recommendations degrade to keyword overlap: %v", warmErr)
		}
		retriever = vectorRetriever
	} else {
		logger.Warn(ctx, "Qdrant or Voyage not configured, strategy recommendations use keyword overlap")
	}

	// 8. Workflow machines
	swapMachine := swap.New(workflowRepo, logger)
	lendingMachine := lending.New(workflowRepo, logger)
	stakingMachine := staking.New(workflowRepo, logger)
	dcaMachine := dca.New(workflowRepo, retriever, dateParser, logger)

	// 9. Google Calendar for recurring-purchase reminders (optional)
	var calendarClient agent.Calendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		gcalClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			calendarClient = gcalClient
			logger.Info(ctx, "Google Calendar initialized")
		}
	}
	calendarID := cfg.GoogleCalendar.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	// 10. Agent handlers and dispatch table
	handlers := agent.ConversationalHandlers(llmManager, logger)
	handlers = append(handlers,
		agent.NewWorkflowHandler(router.HandlerSwap, model.KindSwap, swapMachine, logger),
		agent.NewWorkflowHandler(router.HandlerLending, model.KindLending, lendingMachine, logger),
		agent.NewWorkflowHandler(router.HandlerStaking, model.KindStaking, stakingMachine, logger),
		agent.NewDCAHandler(dcaMachine, calendarClient, calendarID, timezone, logger),
		agent.NewErrorHandler(logger),
	)
	dispatcher, err := agent.NewDispatcher(logger, handlers...)
	if err != nil {
		logger.Fatalf(ctx, "Failed to build dispatch table: %v", err)
	}

	// 11. Chat pipeline
	windower := window.New(cfg.Window.MaxRecent, llmManager, logger)
	uc := chatUC.New(
		windower,
		classifier,
		intentRouter,
		dispatcher,
		map[model.WorkflowKind]chatUC.Workflow{
			model.KindSwap:    swapMachine,
			model.KindLending: lendingMachine,
			model.KindStaking: stakingMachine,
			model.KindDCA:     dcaMachine,
		},
		duration(cfg.Workflow.TurnTimeout, chatUC.DefaultTurnTimeout),
		logger,
	)

	// 12. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatUC:      uc,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 13. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// duration parses raw, falling back when it is empty or malformed.
func duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
