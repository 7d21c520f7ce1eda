package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilterSpec describes query-time constraints on retrieved chunks.
// Every field is opt-in: the zero value of a field means "no constraint on
// that dimension". A nil or zero FilterSpec compiles to an always-true
// predicate. Specs are immutable per retrieval call.
type FilterSpec struct {
	// RequireCaptions keeps only chunks from videos with real captions.
	RequireCaptions bool

	// Categories keeps chunks whose category is in the set (any-of).
	Categories []Category

	// MinQuality keeps chunks at or above this level. QualityNone imposes
	// no floor.
	MinQuality QualityLevel

	// DateFrom keeps chunks published at or after this time. Zero = open.
	DateFrom time.Time

	// DateTo keeps chunks published at or before this time. Zero = open.
	DateTo time.Time

	// PlaylistsInclude keeps chunks whose video is in at least one of these
	// playlists (any-of).
	PlaylistsInclude []string

	// PlaylistsExclude drops chunks whose video is in any of these playlists.
	PlaylistsExclude []string
}

// Predicate is the compiled boolean-test form of a FilterSpec.
type Predicate func(Chunk) bool

// IsZero reports whether no filter dimension is set. A nil spec is zero.
func (f *FilterSpec) IsZero() bool {
	if f == nil {
		return true
	}
	return !f.RequireCaptions &&
		len(f.Categories) == 0 &&
		f.MinQuality == QualityNone &&
		f.DateFrom.IsZero() &&
		f.DateTo.IsZero() &&
		len(f.PlaylistsInclude) == 0 &&
		len(f.PlaylistsExclude) == 0
}

// Compile builds the combined predicate. Sub-predicates for unset fields
// are omitted; the set ones are AND-composed. There is no OR between filter
// dimensions — only the implicit any-of inside the set-membership fields.
func (f *FilterSpec) Compile() Predicate {
	if f.IsZero() {
		return func(Chunk) bool { return true }
	}

	var preds []Predicate

	if f.RequireCaptions {
		preds = append(preds, func(c Chunk) bool { return c.HasCaptions })
	}

	if len(f.Categories) > 0 {
		set := make(map[Category]bool, len(f.Categories))
		for _, cat := range f.Categories {
			set[cat] = true
		}
		preds = append(preds, func(c Chunk) bool { return set[c.Category] })
	}

	if f.MinQuality > QualityNone {
		minQ := f.MinQuality
		preds = append(preds, func(c Chunk) bool { return c.QualityLevel >= minQ })
	}

	if !f.DateFrom.IsZero() {
		from := f.DateFrom
		preds = append(preds, func(c Chunk) bool { return !c.PublishedAt.Before(from) })
	}

	if !f.DateTo.IsZero() {
		to := f.DateTo
		preds = append(preds, func(c Chunk) bool { return !c.PublishedAt.After(to) })
	}

	if len(f.PlaylistsInclude) > 0 {
		include := stringSet(f.PlaylistsInclude)
		preds = append(preds, func(c Chunk) bool {
			for _, id := range c.PlaylistIDs {
				if include[id] {
					return true
				}
			}
			return false
		})
	}

	if len(f.PlaylistsExclude) > 0 {
		exclude := stringSet(f.PlaylistsExclude)
		preds = append(preds, func(c Chunk) bool {
			for _, id := range c.PlaylistIDs {
				if exclude[id] {
					return false
				}
			}
			return true
		})
	}

	return func(c Chunk) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Summary returns a human-readable description of the active filters.
func (f *FilterSpec) Summary() string {
	if f.IsZero() {
		return "No filters active"
	}

	var parts []string
	if f.RequireCaptions {
		parts = append(parts, "Captions required")
	}
	if len(f.Categories) > 0 {
		names := make([]string, len(f.Categories))
		for i, cat := range f.Categories {
			names[i] = string(cat)
		}
		parts = append(parts, "Categories: "+strings.Join(names, ", "))
	}
	if f.MinQuality > QualityNone {
		parts = append(parts, "Min quality: "+f.MinQuality.String())
	}
	switch {
	case !f.DateFrom.IsZero() && !f.DateTo.IsZero():
		parts = append(parts, fmt.Sprintf("Date range: %s to %s",
			f.DateFrom.Format("2006-01-02"), f.DateTo.Format("2006-01-02")))
	case !f.DateFrom.IsZero():
		parts = append(parts, "After: "+f.DateFrom.Format("2006-01-02"))
	case !f.DateTo.IsZero():
		parts = append(parts, "Before: "+f.DateTo.Format("2006-01-02"))
	}
	if len(f.PlaylistsInclude) > 0 {
		parts = append(parts, fmt.Sprintf("%d playlist(s)", len(f.PlaylistsInclude)))
	}
	if len(f.PlaylistsExclude) > 0 {
		parts = append(parts, fmt.Sprintf("%d playlist(s) excluded", len(f.PlaylistsExclude)))
	}

	return strings.Join(parts, " | ")
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
