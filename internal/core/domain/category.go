package domain

import "fmt"

// Category classifies a video by its title. A chunk always carries exactly
// one category; inference picks the first matching rule, never several.
type Category string

const (
	// CategoryDailyUpdate covers recurring market update content.
	CategoryDailyUpdate Category = "daily_update"

	// CategoryEducational covers tutorials, explainers, and lessons.
	CategoryEducational Category = "educational"

	// CategoryInterview covers interviews, Q&A sessions, and discussions.
	CategoryInterview Category = "interview"

	// CategorySpecialEvent covers one-off events (FOMC, earnings, alerts).
	CategorySpecialEvent Category = "special_event"

	// CategoryGeneral is the fallback when no rule matches.
	CategoryGeneral Category = "general"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryDailyUpdate,
		CategoryEducational,
		CategoryInterview,
		CategorySpecialEvent,
		CategoryGeneral,
	}
}

// ParseCategory converts a string to a Category.
// Returns ErrInvalidInput for unknown values.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
}
