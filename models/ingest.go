package models

// IngestFailure records one document that was skipped during an ingestion run,
// together with the reason it could not be stored.
type IngestFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// IngestReport summarizes one ingestion batch. The batch itself never fails on
// a bad document; failures are only visible here and in the logs.
type IngestReport struct {
	Indexed  int             `json:"indexed"`
	Skipped  int             `json:"skipped"`
	Failures []IngestFailure `json:"failures,omitempty"`
}
