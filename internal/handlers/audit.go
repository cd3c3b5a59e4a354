package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
)

type AuditHandler struct {
	log     *logger.Logger
	vendors repos.VendorRepo
	audits  repos.AuditLogRepo
}

func NewAuditHandler(log *logger.Logger, vendors repos.VendorRepo, audits repos.AuditLogRepo) *AuditHandler {
	return &AuditHandler{
		log:     log.With("handler", "AuditHandler"),
		vendors: vendors,
		audits:  audits,
	}
}

// GET /api/vendors/:id/audit-logs
// Newest first, so the trail reads as a reverse-chronological history.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	if _, err := h.vendors.GetByID(c.Request.Context(), nil, vendorID); err != nil {
		RespondServiceError(c, err)
		return
	}
	logs, err := h.audits.ListByVendor(c.Request.Context(), nil, vendorID, true)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, logs)
}
