package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/go-playground/validator/v10"
	"github.com/healthpal-ai/health-core/agent"
	"github.com/healthpal-ai/health-core/appconfig"
	"github.com/healthpal-ai/health-core/db"
	"github.com/healthpal-ai/health-core/llm"
	"github.com/healthpal-ai/health-core/memory"
	"github.com/healthpal-ai/health-core/observability"
	"github.com/healthpal-ai/health-core/research"
	"github.com/healthpal-ai/health-core/services"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	// load config file
	ccfgg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", ccfgg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := validator.New().Struct(ccfgg); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	llmClient, err := llm.ProvideLLMClient(ccfgg.GeminiModel, ccfgg.GroqModel, ccfgg.CallTimeout())
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	embedder, err := llm.ProvideOllamaEmbedder(ccfgg.EmbeddingModel)
	if err != nil {
		logger.Fatal("Failed to create Ollama embedder", zap.Error(err))
	}

	var searcher research.Searcher
	if sonar := research.ProvideSonarClient(ccfgg.CallTimeout()); sonar != nil {
		searcher = sonar
	} else {
		logger.Info("SONAR_API_KEY not configured, research stage disabled")
	}

	mongoClient := odm.ProvideMongoClient()

	if err := db.InitHealthCoreDB(context.Background(), mongoClient, ccfgg.DBName); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	tips := db.StoreOf[db.HealthTipModel](mongoClient, ccfgg.DBName)
	products := db.StoreOf[db.ProductModel](mongoClient, ccfgg.DBName)
	chats := db.StoreOf[db.ChatModel](mongoClient, ccfgg.DBName)
	feedback := db.StoreOf[db.FeedbackModel](mongoClient, ccfgg.DBName)
	profiles := db.StoreOf[db.UserProfileModel](mongoClient, ccfgg.DBName)

	metrics := observability.ProvideMetrics()

	flow := agent.NewChatFlow(
		agent.NewQueryPlanner(llmClient, ccfgg.MaxSubQueries, metrics),
		agent.NewResearchStep(searcher, metrics),
		agent.NewRetrieveStep(embedder, tips, products, ccfgg.RetrievalLimit, metrics),
		agent.NewComposer(llmClient, metrics),
		memory.NewContextStore(ccfgg.MaxChatHistory),
		memory.NewProfileStore(profiles, llmClient),
		chats,
		metrics,
	)

	server := services.ProvideServer(flow, tips, products, feedback, metrics)

	ctx := getCancellableContext()

	httpServer := &http.Server{
		Addr:    ccfgg.HTTPPort,
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving HTTP", zap.String("port", ccfgg.HTTPPort), zap.String("model", llmClient.GetModel()))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
