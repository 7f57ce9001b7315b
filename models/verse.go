package models

// Verse is a single passage retrieved from the vector database.
type Verse struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ScoredVerse is a Verse together with its similarity score against a query
// embedding.
type ScoredVerse struct {
	Verse
	Similarity float64 `json:"similarity"`
}
