package domain

import "fmt"

// QualityLevel is the quantized transcript-quality tier. The integer values
// define the ordinal comparison used by quality filters:
// none < low < medium < high.
type QualityLevel int

const (
	// QualityNone means no usable transcript (or a zero score).
	QualityNone QualityLevel = iota

	// QualityLow is a sparse transcript.
	QualityLow

	// QualityMedium is a reasonably dense transcript.
	QualityMedium

	// QualityHigh is a dense, near-complete transcript.
	QualityHigh
)

// Quality score thresholds. QualityFromScore is a monotonic quantization:
// a higher score never maps to a lower level.
const (
	qualityHighThreshold   = 0.8
	qualityMediumThreshold = 0.5
)

// QualityFromScore quantizes a continuous quality score in [0,1].
func QualityFromScore(score float64) QualityLevel {
	switch {
	case score >= qualityHighThreshold:
		return QualityHigh
	case score >= qualityMediumThreshold:
		return QualityMedium
	case score > 0:
		return QualityLow
	default:
		return QualityNone
	}
}

// String returns the lowercase name of the level.
func (q QualityLevel) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return "none"
	}
}

// ParseQualityLevel converts a string to a QualityLevel.
// Returns ErrInvalidInput for unknown values.
func ParseQualityLevel(s string) (QualityLevel, error) {
	switch s {
	case "none":
		return QualityNone, nil
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	default:
		return QualityNone, fmt.Errorf("%w: unknown quality level %q", ErrInvalidInput, s)
	}
}
