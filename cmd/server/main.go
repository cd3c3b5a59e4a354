package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/analysis"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/config"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/db"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/handlers"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/ingestion/extractor"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/kb"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/chroma"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/llm"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/server"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/services"
)

func main() {
	cfg := config.Load()

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log, cfg.Postgres)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	vendorRepo := repos.NewVendorRepo(thePG, log)
	documentRepo := repos.NewDocumentRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	decisionRepo := repos.NewDecisionRepo(thePG, log)
	auditLogRepo := repos.NewAuditLogRepo(thePG, log)

	// LLM + vector store
	log.Info("Setting up LLM and vector store from main...")
	llmClient, err := llm.NewClient(log, cfg.LLM)
	if err != nil {
		log.Error("Could not init LLM client", "error", err)
		os.Exit(1)
	}
	vectorStore, err := chroma.NewStore(log, cfg.Chroma)
	if err != nil {
		log.Error("Could not init Chroma store", "error", err)
		os.Exit(1)
	}

	// RAG pipeline
	embedder := rag.NewNormalizedEmbedder(llmClient)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		embedder = rag.NewCachedEmbedder(log, embedder, rdb, cfg.LLM.EmbedModel)
	}
	chunker := rag.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	indexer := rag.NewIndexer(log, vectorStore, embedder)
	retriever := rag.NewRetriever(vectorStore, embedder)

	// Knowledge bases
	kbLoader := kb.NewLoader(log, chunker, indexer)
	if err := kbLoader.SeedIfEmpty(context.Background()); err != nil {
		log.Warn("Knowledge base seeding failed", "error", err)
	}

	// Analyzers
	legalAnalyzer := analysis.NewLegalAnalyzer(log, llmClient, retriever)
	securityAnalyzer := analysis.NewSecurityAnalyzer(log, llmClient, retriever)

	// Services
	log.Info("Setting up services from main...")
	workflowService := services.NewWorkflowService(log, thePG, vendorRepo, reviewRepo, decisionRepo, auditLogRepo, legalAnalyzer, securityAnalyzer)
	documentService := services.NewDocumentService(log, thePG, vendorRepo, documentRepo, extractor.NewExtractor(), chunker, indexer)

	// Handlers
	log.Info("Setting up handlers from main...")
	vendorHandler := handlers.NewVendorHandler(log, vendorRepo, workflowService)
	documentHandler := handlers.NewDocumentHandler(log, documentService)
	reviewHandler := handlers.NewReviewHandler(log, reviewRepo, workflowService)
	decisionHandler := handlers.NewDecisionHandler(log, decisionRepo, workflowService)
	auditHandler := handlers.NewAuditHandler(log, vendorRepo, auditLogRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		VendorHandler:   vendorHandler,
		DocumentHandler: documentHandler,
		ReviewHandler:   reviewHandler,
		DecisionHandler: decisionHandler,
		AuditHandler:    auditHandler,
	})

	fmt.Printf("Server listening on :%s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
