package apihandlers

import (
	"context"
	"net/http"

	"textcat/pkg/categorizer"

	"github.com/gin-gonic/gin"
)

// TextCategorizer classifies a single text. Implementations build whatever
// per-request state they need; the handler keeps none.
type TextCategorizer interface {
	CategorizeText(ctx context.Context, text string) (categorizer.Category, error)
}

type APIHandler struct {
	Categorizer TextCategorizer
}

func NewAPIHandler(tc TextCategorizer) *APIHandler {
	return &APIHandler{Categorizer: tc}
}

// CategorizeRequest represents the JSON body of POST /api/categorize.
type CategorizeRequest struct {
	Text *string `json:"text"`
}

// CategorizeHandler responds with the category as a bare JSON string, e.g.
// "Technology" or "Failed to classify.".
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	text, ok := parseCategorizeRequest(c)
	if !ok {
		return
	}

	category, err := h.Categorizer.CategorizeText(c.Request.Context(), text)
	if err != nil {
		HandleCategorizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// parseCategorizeRequest extracts the text field, writing the 400 response
// itself when the body is unusable.
func parseCategorizeRequest(c *gin.Context) (string, bool) {
	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).WithError(err).Debug("Rejected categorize request body")
		BadRequest(c, MsgInvalidRequestBody)
		return "", false
	}
	if req.Text == nil || *req.Text == "" {
		BadRequest(c, MsgTextNotSupplied)
		return "", false
	}
	return *req.Text, true
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter registers the API routes and middleware on a new gin engine.
func NewRouter(h *APIHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger())

	api := router.Group("/api")
	{
		api.POST("/categorize", h.CategorizeHandler)
	}
	router.GET("/health", HealthHandler)
	return router
}
