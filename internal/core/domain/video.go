package domain

import "time"

// Video holds the source-level attributes of a YouTube video as supplied by
// the caption source. It is the input to metadata enhancement, not an
// indexed entity itself.
type Video struct {
	// ID is the YouTube video ID.
	ID string

	// Title is the video title.
	Title string

	// URL is the watch URL.
	URL string

	// ChannelTitle is the publishing channel's display name.
	ChannelTitle string

	// PublishedAt is the publication time.
	PublishedAt time.Time

	// DurationSeconds is the video length in seconds.
	DurationSeconds int

	// PlaylistIDs lists the playlists the video belongs to.
	PlaylistIDs []string
}

// Transcript is a raw (text, video, caption flag) tuple emitted by a caption
// source during ingestion.
type Transcript struct {
	// Video carries the source attributes.
	Video Video

	// Text is the full transcript text before chunking.
	Text string

	// HasCaptions reports whether real captions were available.
	// When false, Text may be empty and quality scoring is skipped.
	HasCaptions bool
}
