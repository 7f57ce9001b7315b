package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need to construct their dependencies.
// All values come from the environment (optionally seeded from a .env file);
// nothing is read lazily at request time.
type Config struct {
	Port           string
	CorpusDir      string
	Collection     string
	OllamaURL      string
	EmbedModel     string
	GeminiAPIKey   string
	GeminiModel    string
	MatchThreshold float64
	MatchCount     int
}

// Load reads configuration from the environment, applying defaults for
// everything except credentials. Numeric values that fail to parse are a
// startup error, not a silent fallback.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		CorpusDir:      getEnv("CORPUS_DIR", "./gita_parents_store"),
		Collection:     getEnv("CHROMA_COLLECTION", "gita_contents"),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:     getEnv("OLLAMA_EMBED_MODEL", "zylonai/multilingual-e5-large"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		MatchThreshold: 0.3,
		MatchCount:     3,
	}

	if raw := os.Getenv("MATCH_THRESHOLD"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_THRESHOLD %q: %w", raw, err)
		}
		cfg.MatchThreshold = threshold
	}
	if raw := os.Getenv("MATCH_COUNT"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 {
			return nil, fmt.Errorf("invalid MATCH_COUNT %q", raw)
		}
		cfg.MatchCount = count
	}

	return cfg, nil
}

// RequireGeminiKey fails when no Gemini credential is configured. The server
// calls this at startup so a missing key is caught before the first request,
// not during it.
func (c *Config) RequireGeminiKey() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
