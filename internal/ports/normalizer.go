package ports

// Normalizer defines the interface for document text normalization.
type Normalizer interface {
	Normalize(text string) string
}
