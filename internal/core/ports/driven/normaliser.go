package driven

// CaptionNormaliser converts one caption file format to clean transcript
// text. Implementations are stateless and safe for concurrent use.
type CaptionNormaliser interface {
	// Extensions lists the filename suffixes this normaliser handles,
	// including the leading dot. Longer suffixes take precedence during
	// selection.
	Extensions() []string

	// Normalise extracts clean transcript text from raw caption bytes.
	// Timing cues, positioning, and inline markup are removed.
	Normalise(raw []byte) (string, error)
}
