package models

type AskResponse struct {
	Answer string        `json:"answer"`
	Verses []ScoredVerse `json:"verses"`
	Error  string        `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
