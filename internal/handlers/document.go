package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/services"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type DocumentHandler struct {
	log       *logger.Logger
	documents *services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:       log.With("handler", "DocumentHandler"),
		documents: documents,
	}
}

var validStages = map[types.ReviewStage]bool{
	types.StageUseCase:   true,
	types.StageLegal:     true,
	types.StageSecurity:  true,
	types.StageFinancial: true,
}

// POST /api/vendors/:id/documents
// Multipart upload with "file" part plus "stage" and "doc_type" form fields.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}

	stage := types.ReviewStage(c.PostForm("stage"))
	if !validStages[stage] {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("unknown stage: "+string(stage)))
		return
	}
	docType := c.PostForm("doc_type")
	if docType == "" {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("doc_type is required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), vendorID, stage, docType, fileHeader.Filename, data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// GET /api/vendors/:id/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	docs, err := h.documents.ListByVendor(c.Request.Context(), vendorID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, docs)
}

// GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBindingError(c, err)
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, doc)
}
