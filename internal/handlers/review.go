package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/services"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type ReviewHandler struct {
	log      *logger.Logger
	reviews  repos.ReviewRepo
	workflow *services.WorkflowService
}

func NewReviewHandler(log *logger.Logger, reviews repos.ReviewRepo, workflow *services.WorkflowService) *ReviewHandler {
	return &ReviewHandler{
		log:      log.With("handler", "ReviewHandler"),
		reviews:  reviews,
		workflow: workflow,
	}
}

// GET /api/vendors/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	reviews, err := h.reviews.ListByVendor(c.Request.Context(), nil, vendorID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reviews)
}

// GET /api/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	review, err := h.reviews.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, review)
}

type createReviewRequest struct {
	Stage types.ReviewStage `json:"stage" binding:"required,oneof=LEGAL SECURITY"`
}

// POST /api/vendors/:id/reviews
func (h *ReviewHandler) CreateAIReview(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	review, err := h.workflow.CreateAIReview(c.Request.Context(), vendorID, req.Stage)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, review)
}

// POST /api/reviews/:id/trigger?doc_id=...
func (h *ReviewHandler) TriggerReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	docID, err := uuid.Parse(c.Query("doc_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("doc_id query parameter is required"))
		return
	}
	review, err := h.workflow.TriggerReview(c.Request.Context(), reviewID, docID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, review)
}

// POST /api/reviews/:id/submit-form
// The body must match the form schema for the review's stage.
func (h *ReviewHandler) SubmitForm(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	review, err := h.reviews.GetByID(c.Request.Context(), nil, reviewID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	switch review.Stage {
	case types.StageUseCase:
		var form services.UseCaseFormInput
		if err := c.ShouldBindJSON(&form); err != nil {
			RespondBindingError(c, err)
			return
		}
		review, err = h.workflow.SubmitUseCaseForm(c.Request.Context(), reviewID, form)
	case types.StageFinancial:
		var form services.FinancialRiskFormInput
		if err := c.ShouldBindJSON(&form); err != nil {
			RespondBindingError(c, err)
			return
		}
		review, err = h.workflow.SubmitFinancialForm(c.Request.Context(), reviewID, form)
	default:
		RespondError(c, http.StatusBadRequest, "invalid_state", errors.New("this review stage does not accept form submissions"))
		return
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, review)
}
