package services

import "errors"

// Sentinel errors classifying every failure the pipelines can produce. The
// first three cover documents rejected during normalization; the last three
// identify which upstream dependency failed, so the HTTP layer can answer
// with a 502 instead of a generic 500.
var (
	// ErrMalformedRecord means the on-disk document could not be decoded at all.
	ErrMalformedRecord = errors.New("malformed document record")

	// ErrUnsupportedFormat means the record decoded but matches none of the
	// known document shapes.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoContent means the shape matched but the text to embed is missing
	// or empty.
	ErrNoContent = errors.New("document has no page content")

	ErrEmbedding  = errors.New("embedding model failure")
	ErrStore      = errors.New("vector store failure")
	ErrGeneration = errors.New("generative model failure")
)

// IsUpstreamError reports whether err was caused by one of the external
// dependencies (embedding model, vector store, generative model).
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrEmbedding) || errors.Is(err, ErrStore) || errors.Is(err, ErrGeneration)
}
