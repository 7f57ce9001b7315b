package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harivittal/bgai/models"
	"github.com/harivittal/bgai/services"
)

// AskController handles the HTTP requests for the question-answering API. It
// depends on the AskService to perform the actual business logic.
type AskController struct {
	askService services.AskService
}

// NewAskController is a constructor function that creates a new AskController.
// This is called from main to inject the service dependency.
func NewAskController(service services.AskService) *AskController {
	return &AskController{
		askService: service,
	}
}

// Ask is the Gin handler for the POST /api/v1/ask endpoint. It parses the
// request, calls the service layer, and maps failures onto HTTP statuses: a
// bad request body is the caller's fault (400), while a failing embedding
// model, vector store or generative model is an upstream failure (502).
func (c *AskController) Ask(ctx *gin.Context) {
	var req models.AskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := c.askService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		if services.IsUpstreamError(err) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "Upstream dependency failed: " + err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer question"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Health is the Gin handler for the GET /health endpoint. It returns a static
// service-identity payload and has no side effects.
func (c *AskController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: "Bhagavad Gita RAG API",
		Version: "1.0.0",
	})
}
