package elephantlog

// Converter converts extracted article HTML to text for pattern matching.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into text.
	Convert(html string) (string, error)
}
