// Package captions reads transcripts from a caption archive directory.
//
// The archive layout is one caption file per video, named after the
// video ID (<videoID>.cleaned.txt, <videoID>.vtt, or <videoID>.srt),
// plus two optional sidecar files:
//
//   - videos.json: an array of video metadata records
//   - playlists.json: an array of playlist records with member video IDs
//
// Caption text is extracted with the format normalisers; videos without
// a sidecar record still ingest, with placeholder metadata derived from
// the video ID.
package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/normalisers"
)

// Ensure Source implements the interface.
var _ driven.CaptionSource = (*Source)(nil)

// videoRecord is one entry of the videos.json sidecar.
type videoRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	ChannelTitle    string `json:"channel_title"`
	PublishedAt     string `json:"published_at"`
	DurationSeconds int    `json:"duration_seconds"`
}

// playlistRecord is one entry of the playlists.json sidecar.
type playlistRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	VideoIDs []string `json:"video_ids"`
}

// Source streams transcripts from a caption archive directory.
type Source struct {
	dir      string
	watcher  *fsnotify.Watcher
	registry *normalisers.Registry

	videos    map[string]videoRecord
	playlists map[string][]string // videoID -> playlist IDs
}

// New creates a caption source for the given directory. The sidecar
// files are read once at construction; Watch picks up caption files but
// not sidecar edits.
func New(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("captions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("captions path %s is not a directory", dir)
	}

	s := &Source{
		dir:       dir,
		registry:  normalisers.DefaultRegistry(),
		videos:    make(map[string]videoRecord),
		playlists: make(map[string][]string),
	}
	if err := s.loadSidecars(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadSidecars reads videos.json and playlists.json when present.
func (s *Source) loadSidecars() error {
	videosPath := filepath.Join(s.dir, "videos.json")
	if data, err := os.ReadFile(videosPath); err == nil {
		var records []videoRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("parsing %s: %w", videosPath, err)
		}
		for _, record := range records {
			s.videos[record.ID] = record
		}
		logger.Debug("Loaded %d video records from %s", len(records), videosPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", videosPath, err)
	}

	playlistsPath := filepath.Join(s.dir, "playlists.json")
	if data, err := os.ReadFile(playlistsPath); err == nil {
		var records []playlistRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("parsing %s: %w", playlistsPath, err)
		}
		for _, record := range records {
			for _, videoID := range record.VideoIDs {
				s.playlists[videoID] = append(s.playlists[videoID], record.ID)
			}
		}
		logger.Debug("Loaded %d playlists from %s", len(records), playlistsPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", playlistsPath, err)
	}

	return nil
}

// ListTranscripts streams every transcript in the archive, in filename
// order for reproducible ingestion runs.
func (s *Source) ListTranscripts(ctx context.Context) (<-chan domain.Transcript, <-chan error) {
	transcripts := make(chan domain.Transcript)
	errs := make(chan error, 1)

	go func() {
		defer close(transcripts)
		defer close(errs)

		entries, err := os.ReadDir(s.dir)
		if err != nil {
			errs <- fmt.Errorf("reading captions directory: %w", err)
			return
		}

		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, _, ok := s.registry.Match(entry.Name()); ok {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		logger.Info("Found %d caption files in %s", len(names), s.dir)

		for _, name := range names {
			transcript, err := s.readTranscript(name)
			if err != nil {
				errs <- err
				return
			}
			select {
			case transcripts <- *transcript:
			case <-ctx.Done():
				return
			}
		}
	}()

	return transcripts, errs
}

// Watch emits a transcript whenever a caption file is created or
// rewritten. The channel is closed when ctx is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan domain.Transcript, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}
	s.watcher = watcher

	transcripts := make(chan domain.Transcript)
	go func() {
		defer close(transcripts)
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
					continue
				}
				name := filepath.Base(event.Name)
				if _, _, ok := s.registry.Match(name); !ok {
					continue
				}
				transcript, err := s.readTranscript(name)
				if err != nil {
					logger.Warn("Reading %s: %v", name, err)
					continue
				}
				select {
				case transcripts <- *transcript:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return transcripts, nil
}

// readTranscript loads one caption file, normalises it to plain text,
// and joins it with sidecar metadata.
func (s *Source) readTranscript(filename string) (*domain.Transcript, error) {
	normaliser, videoID, ok := s.registry.Match(filename)
	if !ok {
		return nil, fmt.Errorf("no normaliser for caption file %s", filename)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("reading caption file %s: %w", filename, err)
	}
	text, err := normaliser.Normalise(data)
	if err != nil {
		return nil, fmt.Errorf("normalising caption file %s: %w", filename, err)
	}

	video := domain.Video{
		ID:    videoID,
		Title: "Unknown",
		URL:   "https://www.youtube.com/watch?v=" + videoID,
	}
	if record, ok := s.videos[videoID]; ok {
		if record.Title != "" {
			video.Title = record.Title
		}
		if record.URL != "" {
			video.URL = record.URL
		}
		video.ChannelTitle = record.ChannelTitle
		video.DurationSeconds = record.DurationSeconds
		if record.PublishedAt != "" {
			publishedAt, err := time.Parse(time.RFC3339, record.PublishedAt)
			if err != nil {
				return nil, fmt.Errorf("video %s: parsing published_at: %w", videoID, err)
			}
			video.PublishedAt = publishedAt
		}
	}
	video.PlaylistIDs = s.playlists[videoID]

	return &domain.Transcript{
		Video:       video,
		Text:        text,
		HasCaptions: text != "",
	}, nil
}

// Close releases the filesystem watcher if one is running.
func (s *Source) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
