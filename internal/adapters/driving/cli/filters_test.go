package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

func TestFilterFlags_NoFlagsMeansNoFilter(t *testing.T) {
	var flags filterFlags

	spec, err := flags.spec()

	require.NoError(t, err)
	assert.Nil(t, spec)
}

func TestFilterFlags_FullSpec(t *testing.T) {
	flags := filterFlags{
		captionsOnly:     true,
		categories:       []string{"daily_update", "educational"},
		minQuality:       "medium",
		dateFrom:         "2024-01-01",
		dateTo:           "2024-06-30",
		playlists:        []string{"PL1"},
		excludePlaylists: []string{"PL2"},
	}

	spec, err := flags.spec()

	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.True(t, spec.RequireCaptions)
	assert.Equal(t, []domain.Category{domain.CategoryDailyUpdate, domain.CategoryEducational}, spec.Categories)
	assert.Equal(t, domain.QualityMedium, spec.MinQuality)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), spec.DateFrom)
	assert.Equal(t, []string{"PL1"}, spec.PlaylistsInclude)
	assert.Equal(t, []string{"PL2"}, spec.PlaylistsExclude)
}

func TestFilterFlags_EndDateCoversWholeDay(t *testing.T) {
	flags := filterFlags{dateTo: "2024-06-30"}

	spec, err := flags.spec()

	require.NoError(t, err)
	require.NotNil(t, spec)
	// A chunk published late on the end date still passes.
	lateThatDay := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.False(t, spec.DateTo.Before(lateThatDay))
	assert.True(t, spec.DateTo.Before(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFilterFlags_UnknownCategory(t *testing.T) {
	flags := filterFlags{categories: []string{"bogus"}}

	_, err := flags.spec()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterFlags_UnknownQuality(t *testing.T) {
	flags := filterFlags{minQuality: "excellent"}

	_, err := flags.spec()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterFlags_BadDate(t *testing.T) {
	flags := filterFlags{dateFrom: "01/02/2024"}

	_, err := flags.spec()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --from date")
}
