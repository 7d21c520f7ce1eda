package vtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".vtt"}, New().Extensions())
}

func TestNormalise_BasicCues(t *testing.T) {
	raw := `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.500
welcome back to the channel

00:00:02.500 --> 00:00:05.000
today we look at the vix
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back to the channel today we look at the vix", text)
}

func TestNormalise_StripsInlineMarkup(t *testing.T) {
	raw := `WEBVTT

00:00:00.000 --> 00:00:02.500
<c>welcome</c> back<00:00:01.280><c> to</c><00:00:01.520><c> the</c> channel
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back to the channel", text)
}

func TestNormalise_CollapsesRollingDuplicates(t *testing.T) {
	// Auto-generated captions repeat the previous line in each cue.
	raw := `WEBVTT

00:00:00.000 --> 00:00:02.000
welcome back to the channel

00:00:02.000 --> 00:00:04.000
welcome back to the channel

00:00:02.000 --> 00:00:04.000
today we look at the vix
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back to the channel today we look at the vix", text)
}

func TestNormalise_SkipsCueIdentifiers(t *testing.T) {
	raw := `WEBVTT

intro-cue
00:00:00.000 --> 00:00:02.500
welcome back
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back", text)
}

func TestNormalise_SkipsMetadataBlocks(t *testing.T) {
	raw := `WEBVTT

NOTE this file was auto-generated
and should not be edited

STYLE
::cue { color: white }

00:00:00.000 --> 00:00:02.500
welcome back
`

	text, err := New().Normalise([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "welcome back", text)
}

func TestNormalise_Empty(t *testing.T) {
	text, err := New().Normalise([]byte("WEBVTT\n"))

	require.NoError(t, err)
	assert.Empty(t, text)
}
