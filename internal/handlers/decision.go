package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/services"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type DecisionHandler struct {
	log       *logger.Logger
	decisions repos.DecisionRepo
	workflow  *services.WorkflowService
}

func NewDecisionHandler(log *logger.Logger, decisions repos.DecisionRepo, workflow *services.WorkflowService) *DecisionHandler {
	return &DecisionHandler{
		log:       log.With("handler", "DecisionHandler"),
		decisions: decisions,
		workflow:  workflow,
	}
}

type createDecisionRequest struct {
	Actor      string               `json:"actor" binding:"required"`
	Action     types.DecisionAction `json:"action" binding:"required,oneof=APPROVE REJECT APPROVE_WITH_CONDITIONS"`
	Rationale  string               `json:"rationale" binding:"required"`
	Conditions []string             `json:"conditions"`
}

// POST /api/reviews/:id/decisions
func (h *DecisionHandler) CreateDecision(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	var req createDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	decision, err := h.workflow.RecordDecision(c.Request.Context(), reviewID, req.Actor, req.Action, req.Rationale, req.Conditions)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, decision)
}

// GET /api/reviews/:id/decisions
func (h *DecisionHandler) ListDecisions(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	decisions, err := h.decisions.ListByReview(c.Request.Context(), nil, reviewID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, decisions)
}
