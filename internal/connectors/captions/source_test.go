package captions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

func writeArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-1.cleaned.txt"),
		[]byte("gamma exposure drives dealer hedging"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-2.cleaned.txt"),
		[]byte("options education basics"), 0600))
	// Not a caption file; must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("ignore me"), 0600))

	videos := `[
		{"id": "vid-1", "title": "AM HYPE Market Update",
		 "url": "https://www.youtube.com/watch?v=vid-1",
		 "channel_title": "Trading Channel",
		 "published_at": "2024-03-15T14:30:00Z",
		 "duration_seconds": 1800}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos.json"), []byte(videos), 0600))

	playlists := `[
		{"id": "pl-daily", "title": "Daily Updates", "video_ids": ["vid-1"]},
		{"id": "pl-all", "title": "Everything", "video_ids": ["vid-1", "vid-2"]}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "playlists.json"), []byte(playlists), 0600))

	return dir
}

func collect(t *testing.T, source *Source) []domain.Transcript {
	t.Helper()

	transcripts, errs := source.ListTranscripts(context.Background())
	var result []domain.Transcript
	for transcript := range transcripts {
		result = append(result, transcript)
	}
	require.NoError(t, <-errs)
	return result
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSource_ListTranscripts(t *testing.T) {
	source, err := New(writeArchive(t))
	require.NoError(t, err)
	defer source.Close()

	transcripts := collect(t, source)
	require.Len(t, transcripts, 2)

	// Filename order.
	first := transcripts[0]
	assert.Equal(t, "vid-1", first.Video.ID)
	assert.Equal(t, "AM HYPE Market Update", first.Video.Title)
	assert.Equal(t, "Trading Channel", first.Video.ChannelTitle)
	assert.Equal(t, 1800, first.Video.DurationSeconds)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), first.Video.PublishedAt)
	assert.ElementsMatch(t, []string{"pl-daily", "pl-all"}, first.Video.PlaylistIDs)
	assert.Equal(t, "gamma exposure drives dealer hedging", first.Text)
	assert.True(t, first.HasCaptions)
}

func TestSource_ListTranscripts_NoSidecarRecord(t *testing.T) {
	source, err := New(writeArchive(t))
	require.NoError(t, err)
	defer source.Close()

	transcripts := collect(t, source)
	require.Len(t, transcripts, 2)

	// vid-2 has no videos.json entry: placeholder metadata.
	second := transcripts[1]
	assert.Equal(t, "vid-2", second.Video.ID)
	assert.Equal(t, "Unknown", second.Video.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid-2", second.Video.URL)
	assert.True(t, second.Video.PublishedAt.IsZero())
	assert.Equal(t, []string{"pl-all"}, second.Video.PlaylistIDs)
}

func TestSource_ListTranscripts_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-1.cleaned.txt"), []byte("  \n"), 0600))

	source, err := New(dir)
	require.NoError(t, err)
	defer source.Close()

	transcripts := collect(t, source)
	require.Len(t, transcripts, 1)
	assert.False(t, transcripts[0].HasCaptions)
	assert.Empty(t, transcripts[0].Text)
}

func TestSource_ListTranscripts_NoSidecars(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-1.cleaned.txt"), []byte("text"), 0600))

	source, err := New(dir)
	require.NoError(t, err)
	defer source.Close()

	transcripts := collect(t, source)
	assert.Len(t, transcripts, 1)
}

func TestSource_Watch(t *testing.T) {
	dir := writeArchive(t)
	source, err := New(dir)
	require.NoError(t, err)
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transcripts, err := source.Watch(ctx)
	require.NoError(t, err)

	// Give the watcher a moment to start before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-3.cleaned.txt"),
		[]byte("new video transcript"), 0600))

	select {
	case transcript := <-transcripts:
		assert.Equal(t, "vid-3", transcript.Video.ID)
		assert.Equal(t, "new video transcript", transcript.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestSource_Watch_IgnoresOtherFiles(t *testing.T) {
	dir := writeArchive(t)
	source, err := New(dir)
	require.NoError(t, err)
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transcripts, err := source.Watch(ctx)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("noise"), 0600))

	select {
	case transcript := <-transcripts:
		t.Fatalf("unexpected transcript for %s", transcript.Video.ID)
	case <-time.After(500 * time.Millisecond):
		// No event: correct.
	}
}

func TestSource_ListTranscripts_VTTArchive(t *testing.T) {
	dir := t.TempDir()
	raw := "WEBVTT\nKind: captions\n\n00:00:00.000 --> 00:00:02.000\n<c>gamma</c> levels matter\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid-1.vtt"), []byte(raw), 0600))

	source, err := New(dir)
	require.NoError(t, err)
	defer source.Close()

	transcripts := collect(t, source)
	require.Len(t, transcripts, 1)
	assert.Equal(t, "vid-1", transcripts[0].Video.ID)
	assert.Equal(t, "gamma levels matter", transcripts[0].Text)
	assert.True(t, transcripts[0].HasCaptions)
}
