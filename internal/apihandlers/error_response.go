package apihandlers

import (
	"errors"
	"net/http"

	"textcat/internal/models"

	"github.com/gin-gonic/gin"
)

// Messages returned to clients for request validation failures.
const (
	MsgTextNotSupplied    = "Input text not supplied."
	MsgInvalidRequestBody = "Invalid request body."
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSONError sends {"error": msg} with status.
func JSONError(ctx *gin.Context, status int, msg string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, msg)
}

// StatusForError maps categorization errors to an HTTP status. Configuration
// problems are the server's fault; provider failures are upstream ones.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, models.ErrConnectivity):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrProviderFailure):
		return http.StatusBadGateway
	default:
		// ErrInvalidModel, ErrMissingCredential, ErrUnknownProvider and anything unexpected.
		return http.StatusInternalServerError
	}
}

// HandleCategorizeError logs err and sends the mapped error response.
func HandleCategorizeError(ctx *gin.Context, err error) {
	status := StatusForError(err)
	requestLogger(ctx).WithError(err).WithField("status", status).Error("Categorization failed")
	JSONError(ctx, status, err.Error())
}
