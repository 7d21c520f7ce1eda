package srt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".srt"}, New().Extensions())
}

func TestNormalise_BasicCues(t *testing.T) {
	raw := `1
00:00:00,000 --> 00:00:02,500
welcome back to the channel

2
00:00:02,500 --> 00:00:05,000
today we look at the vix
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back to the channel today we look at the vix", text)
}

func TestNormalise_StripsMarkup(t *testing.T) {
	raw := `1
00:00:00,000 --> 00:00:02,500
<i>welcome back</i> {\an8}to the channel
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back to the channel", text)
}

func TestNormalise_CollapsesDuplicates(t *testing.T) {
	raw := `1
00:00:00,000 --> 00:00:02,000
welcome back

2
00:00:02,000 --> 00:00:04,000
welcome back
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back", text)
}

func TestNormalise_Empty(t *testing.T) {
	text, err := New().Normalise([]byte(""))

	require.NoError(t, err)
	assert.Empty(t, text)
}
