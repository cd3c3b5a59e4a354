package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/ingestion/extractor"
	apperrors "github.com/AlexPerrin/GRC-AI-Automation/internal/pkg/errors"
)

type APIError struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError translates service-layer sentinels to HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
	var ufe *extractor.UnsupportedFormatError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidState):
		RespondError(c, http.StatusBadRequest, "invalid_state", err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		RespondError(c, http.StatusForbidden, "permission_denied", err)
	case errors.Is(err, apperrors.ErrNotImplemented):
		RespondError(c, http.StatusNotImplemented, "not_implemented", err)
	case errors.As(err, &ufe):
		RespondError(c, http.StatusUnsupportedMediaType, "unsupported_format", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

// RespondBindingError answers 422 with a per-field breakdown when the body
// failed validation, 400 for anything else (malformed JSON, bad UUID).
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:  fe.Field(),
				Reason: fe.Tag(),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
			Error: APIError{
				Message: "validation failed",
				Code:    "validation_failed",
				Fields:  fields,
			},
		})
		return
	}
	RespondError(c, http.StatusBadRequest, "bad_request", err)
}
