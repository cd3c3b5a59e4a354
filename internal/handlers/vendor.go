package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/services"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type VendorHandler struct {
	log      *logger.Logger
	vendors  repos.VendorRepo
	workflow *services.WorkflowService
}

func NewVendorHandler(log *logger.Logger, vendors repos.VendorRepo, workflow *services.WorkflowService) *VendorHandler {
	return &VendorHandler{
		log:      log.With("handler", "VendorHandler"),
		vendors:  vendors,
		workflow: workflow,
	}
}

type createVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type vendorListResponse struct {
	Vendors []*types.Vendor `json:"vendors"`
	Total   int64           `json:"total"`
}

// POST /api/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, err := h.vendors.Create(c.Request.Context(), nil, &types.Vendor{
		Name:        req.Name,
		Website:     req.Website,
		Description: req.Description,
		Status:      types.VendorIntake,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, vendor)
}

// GET /api/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	vendors, total, err := h.vendors.List(c.Request.Context(), nil, limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendorListResponse{Vendors: vendors, Total: total})
}

// GET /api/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, err := h.vendors.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// POST /api/vendors/:id/start-intake
func (h *VendorHandler) StartIntake(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, _, err := h.workflow.StartIntake(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// POST /api/vendors/:id/confirm-nda
func (h *VendorHandler) ConfirmNDA(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, err := h.workflow.ConfirmNDA(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// POST /api/vendors/:id/start-financial-review
func (h *VendorHandler) StartFinancialReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, _, err := h.workflow.StartFinancialReview(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// POST /api/vendors/:id/complete-onboarding
func (h *VendorHandler) CompleteOnboarding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, err := h.workflow.CompleteOnboarding(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

type rejectVendorRequest struct {
	Rationale string `json:"rationale" binding:"required"`
}

// POST /api/vendors/:id/reject
func (h *VendorHandler) RejectVendor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	var req rejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}
	vendor, err := h.workflow.RejectVendor(c.Request.Context(), id, "MANUAL", req.Rationale)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}
