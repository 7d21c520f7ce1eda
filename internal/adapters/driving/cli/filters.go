package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// filterFlags holds the retrieval filter flags shared by search and ask.
type filterFlags struct {
	captionsOnly     bool
	categories       []string
	minQuality       string
	dateFrom         string
	dateTo           string
	playlists        []string
	excludePlaylists []string
}

// register adds the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.captionsOnly, "captions-only", false, "only videos with real captions")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "category filter (repeatable: daily_update, educational, interview, special_event, general)")
	cmd.Flags().StringVar(&f.minQuality, "min-quality", "", "minimum caption quality (low, medium, high)")
	cmd.Flags().StringVar(&f.dateFrom, "from", "", "earliest publish date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.dateTo, "to", "", "latest publish date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringSliceVar(&f.playlists, "playlist", nil, "only videos in these playlists (repeatable)")
	cmd.Flags().StringSliceVar(&f.excludePlaylists, "exclude-playlist", nil, "drop videos in these playlists (repeatable)")
}

// spec parses the flags into a FilterSpec. Returns nil when no filter
// flag was set.
func (f *filterFlags) spec() (*domain.FilterSpec, error) {
	spec := &domain.FilterSpec{
		RequireCaptions:  f.captionsOnly,
		PlaylistsInclude: f.playlists,
		PlaylistsExclude: f.excludePlaylists,
	}

	for _, name := range f.categories {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		spec.Categories = append(spec.Categories, cat)
	}

	if f.minQuality != "" {
		level, err := domain.ParseQualityLevel(f.minQuality)
		if err != nil {
			return nil, err
		}
		spec.MinQuality = level
	}

	var err error
	if spec.DateFrom, err = parseDate(f.dateFrom); err != nil {
		return nil, fmt.Errorf("invalid --from date: %w", err)
	}
	if spec.DateTo, err = parseDate(f.dateTo); err != nil {
		return nil, fmt.Errorf("invalid --to date: %w", err)
	}
	// An inclusive end date covers the whole day.
	if !spec.DateTo.IsZero() {
		spec.DateTo = spec.DateTo.Add(24*time.Hour - time.Nanosecond)
	}

	if spec.IsZero() {
		return nil, nil
	}
	return spec, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
