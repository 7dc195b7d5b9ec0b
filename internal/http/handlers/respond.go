package handlers

import (
	"net/http"

	"github.com/geocoder89/bloghub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// APIError is the body of every JSON error: {"error": {...}}.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// RespondError aborts the chain so nothing after the handler writes to a
// response that already carries an error.
func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	requestID := ctx.GetString(middlewares.CtxRequestID)
	if requestID == "" {
		requestID = ctx.GetHeader("X-Request-Id")
	}

	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: APIError{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Details:   details,
	}})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
