package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/harivittal/bgai/models"
)

// PassagePrefix is prepended to stored passages before embedding. E5-family
// models encode passages and queries differently; the corpus was indexed with
// this prefix while queries are embedded raw, and the two sides must never be
// made symmetric or stored vectors stop matching.
const PassagePrefix = "passage: "

// Embedder converts text into a fixed-dimension vector. EmbedPassage applies
// the passage framing convention; EmbedQuery embeds the text as-is. Both are
// deterministic for a fixed model configuration and safe for concurrent use.
type Embedder interface {
	EmbedPassage(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// OllamaEmbedder generates embeddings via a local Ollama server.
type OllamaEmbedder struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewOllamaEmbedder creates an Embedder backed by the Ollama embedding API.
func NewOllamaEmbedder(client *http.Client, baseURL, model string) *OllamaEmbedder {
	return &OllamaEmbedder{
		httpClient: client,
		baseURL:    baseURL,
		model:      model,
	}
}

// EmbedPassage embeds stored content with the passage framing prefix.
func (e *OllamaEmbedder) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, PassagePrefix+text)
}

// EmbedQuery embeds a question without any framing prefix.
func (e *OllamaEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *OllamaEmbedder) embed(ctx context.Context, textToEmbed string) ([]float32, error) {
	reqBody, err := json.Marshal(models.OllamaEmbedRequest{
		Model:  e.model,
		Prompt: textToEmbed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama embedding api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama api returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ollamaResp models.OllamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if len(ollamaResp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding")
	}
	return ollamaResp.Embedding, nil
}
