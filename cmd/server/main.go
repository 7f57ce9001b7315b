package main

import (
	"context"
	"log"
	"net/http"
	"time"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"

	"github.com/harivittal/bgai/config"
	"github.com/harivittal/bgai/controller"
	"github.com/harivittal/bgai/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Invalid configuration: %v", err)
	}
	if err := cfg.RequireGeminiKey(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Create Chroma client using v2 API
	chromaClient, err := chromago.NewHTTPClient()
	if err != nil {
		log.Fatalf("FATAL: Failed to create chroma client: %v", err)
	}

	// Ensure we close the client to release resources like local embedding functions
	defer func() {
		if closeErr := chromaClient.Close(); closeErr != nil {
			log.Printf("Warning: Failed to close chroma client: %v", closeErr)
		}
	}()

	collection, err := services.GetOrCreateCollection(chromaClient, cfg.Collection)
	if err != nil {
		log.Fatalf("FATAL: Failed to get or create collection: %v", err)
	}

	geminiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to create Gemini client: %v", err)
	}
	log.Println("Successfully connected to Google Gemini.")

	embedder := services.NewOllamaEmbedder(httpClient, cfg.OllamaURL, cfg.EmbedModel)
	store := services.NewChromaStore(collection)
	generator := services.NewGeminiGenerator(geminiClient, cfg.GeminiModel)
	askService := services.NewAskService(embedder, store, generator, cfg.MatchThreshold, cfg.MatchCount)
	askController := controller.NewAskController(askService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware for testing
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", askController.Health)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/ask", askController.Ask) // Endpoint to ask a question
	}

	log.Printf("Gita RAG backend server starting on http://localhost:%s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/health", cfg.Port)
	log.Printf("  POST http://localhost:%s/api/v1/ask", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}
