package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/handlers"
)

type RouterConfig struct {
	VendorHandler   *handlers.VendorHandler
	DocumentHandler *handlers.DocumentHandler
	ReviewHandler   *handlers.ReviewHandler
	DecisionHandler *handlers.DecisionHandler
	AuditHandler    *handlers.AuditHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Vendors
		api.POST("/vendors", cfg.VendorHandler.CreateVendor)
		api.GET("/vendors", cfg.VendorHandler.ListVendors)
		api.GET("/vendors/:id", cfg.VendorHandler.GetVendor)
		api.POST("/vendors/:id/start-intake", cfg.VendorHandler.StartIntake)
		api.POST("/vendors/:id/confirm-nda", cfg.VendorHandler.ConfirmNDA)
		api.POST("/vendors/:id/start-financial-review", cfg.VendorHandler.StartFinancialReview)
		api.POST("/vendors/:id/complete-onboarding", cfg.VendorHandler.CompleteOnboarding)
		api.POST("/vendors/:id/reject", cfg.VendorHandler.RejectVendor)
		// Documents
		api.POST("/vendors/:id/documents", cfg.DocumentHandler.UploadDocument)
		api.GET("/vendors/:id/documents", cfg.DocumentHandler.ListDocuments)
		api.GET("/documents/:id", cfg.DocumentHandler.GetDocument)
		// Reviews
		api.GET("/vendors/:id/reviews", cfg.ReviewHandler.ListReviews)
		api.POST("/vendors/:id/reviews", cfg.ReviewHandler.CreateAIReview)
		api.GET("/reviews/:id", cfg.ReviewHandler.GetReview)
		api.POST("/reviews/:id/trigger", cfg.ReviewHandler.TriggerReview)
		api.POST("/reviews/:id/submit-form", cfg.ReviewHandler.SubmitForm)
		// Decisions
		api.POST("/reviews/:id/decisions", cfg.DecisionHandler.CreateDecision)
		api.GET("/reviews/:id/decisions", cfg.DecisionHandler.ListDecisions)
		// Audit trail
		api.GET("/vendors/:id/audit-logs", cfg.AuditHandler.ListAuditLogs)
	}

	return router
}
