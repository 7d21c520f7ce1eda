package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

const (
	defaultSearchCount = 10
	defaultAskSources  = 5
)

// filterRequest is the wire form of a FilterSpec. Every field is optional.
type filterRequest struct {
	CaptionsOnly     bool     `json:"captions_only"`
	Categories       []string `json:"categories"`
	MinQuality       string   `json:"min_quality"`
	DateFrom         string   `json:"date_from"`
	DateTo           string   `json:"date_to"`
	Playlists        []string `json:"playlists"`
	ExcludePlaylists []string `json:"exclude_playlists"`
}

// spec converts the wire filter to a FilterSpec. Returns nil when no
// field is set.
func (f *filterRequest) spec() (*domain.FilterSpec, error) {
	if f == nil {
		return nil, nil
	}

	spec := &domain.FilterSpec{
		RequireCaptions:  f.CaptionsOnly,
		PlaylistsInclude: f.Playlists,
		PlaylistsExclude: f.ExcludePlaylists,
	}

	for _, name := range f.Categories {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		spec.Categories = append(spec.Categories, cat)
	}

	if f.MinQuality != "" {
		level, err := domain.ParseQualityLevel(f.MinQuality)
		if err != nil {
			return nil, err
		}
		spec.MinQuality = level
	}

	if f.DateFrom != "" {
		t, err := time.Parse("2006-01-02", f.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date_from: %v", domain.ErrInvalidInput, err)
		}
		spec.DateFrom = t
	}
	if f.DateTo != "" {
		t, err := time.Parse("2006-01-02", f.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date_to: %v", domain.ErrInvalidInput, err)
		}
		// Inclusive end date covers the whole day.
		spec.DateTo = t.Add(24*time.Hour - time.Nanosecond)
	}

	if spec.IsZero() {
		return nil, nil
	}
	return spec, nil
}

type searchRequest struct {
	Query  string         `json:"query"`
	Count  int            `json:"count"`
	Filter *filterRequest `json:"filter"`
}

// chunkResponse is the wire form of a retrieved chunk.
type chunkResponse struct {
	ID             string   `json:"id"`
	VideoID        string   `json:"video_id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	PublishedAt    string   `json:"published_at,omitempty"`
	Text           string   `json:"text"`
	Category       string   `json:"category"`
	QualityLevel   string   `json:"quality_level"`
	QualityScore   float64  `json:"quality_score"`
	TechnicalScore float64  `json:"technical_score"`
	PlaylistIDs    []string `json:"playlist_ids,omitempty"`
	Score          float64  `json:"score"`
}

func toChunkResponse(sc domain.ScoredChunk) chunkResponse {
	c := sc.Chunk
	resp := chunkResponse{
		ID:             c.ID,
		VideoID:        c.VideoID,
		Title:          c.Title,
		URL:            c.URL,
		Text:           c.Text,
		Category:       string(c.Category),
		QualityLevel:   c.QualityLevel.String(),
		QualityScore:   c.QualityScore,
		TechnicalScore: c.TechnicalScore,
		PlaylistIDs:    c.PlaylistIDs,
		Score:          sc.Score,
	}
	if !c.PublishedAt.IsZero() {
		resp.PublishedAt = c.PublishedAt.Format(time.RFC3339)
	}
	return resp
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []chunkResponse `json:"results"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Count <= 0 {
		req.Count = defaultSearchCount
	}

	filter, err := req.Filter.spec()
	if err != nil {
		return httpError(err)
	}

	results, err := s.retrieval.Retrieve(c.Request().Context(), req.Query, req.Count, filter)
	if err != nil {
		return httpError(err)
	}

	resp := searchResponse{Query: req.Query, Results: make([]chunkResponse, len(results))}
	for i, r := range results {
		resp.Results[i] = toChunkResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

type askRequest struct {
	Question    string         `json:"question"`
	Sources     int            `json:"sources"`
	Temperature float64        `json:"temperature"`
	Stream      bool           `json:"stream"`
	Filter      *filterRequest `json:"filter"`
}

type askResponse struct {
	Question         string          `json:"question"`
	Answer           string          `json:"answer"`
	Sources          []chunkResponse `json:"sources"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
}

func (s *Server) handleAsk(c echo.Context) error {
	if s.ask == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, domain.ErrLLMUnavailable.Error())
	}

	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Sources <= 0 {
		req.Sources = defaultAskSources
	}

	filter, err := req.Filter.spec()
	if err != nil {
		return httpError(err)
	}

	opts := domain.AskOptions{
		Sources:     req.Sources,
		Temperature: req.Temperature,
		Filter:      filter,
	}

	if req.Stream {
		return s.streamAsk(c, req.Question, opts)
	}

	answer, err := s.ask.Ask(c.Request().Context(), req.Question, opts)
	if err != nil {
		return httpError(err)
	}

	resp := askResponse{
		Question:         answer.Question,
		Answer:           answer.Text,
		Sources:          make([]chunkResponse, len(answer.Sources)),
		ProcessingTimeMs: answer.ProcessingTime.Milliseconds(),
	}
	for i, src := range answer.Sources {
		resp.Sources[i] = toChunkResponse(src)
	}
	return c.JSON(http.StatusOK, resp)
}

// sseEvent is the wire form of one server-sent stream event.
type sseEvent struct {
	Type    string         `json:"type"`
	Content string         `json:"content,omitempty"`
	Source  *chunkResponse `json:"source,omitempty"`
}

// streamAsk relays the answer stream as server-sent events, one JSON
// payload per event.
func (s *Server) streamAsk(c echo.Context, question string, opts domain.AskOptions) error {
	events, err := s.ask.AskStream(c.Request().Context(), question, opts)
	if err != nil {
		return httpError(err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(resp)
	for ev := range events {
		out := sseEvent{Type: string(ev.Type), Content: ev.Content}
		if ev.Source != nil {
			cr := toChunkResponse(*ev.Source)
			out.Source = &cr
		}
		if _, err := fmt.Fprint(resp, "data: "); err != nil {
			return nil
		}
		if err := enc.Encode(out); err != nil {
			return nil
		}
		if _, err := fmt.Fprint(resp, "\n"); err != nil {
			return nil
		}
		resp.Flush()
	}
	return nil
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.stats.IndexStats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleFilters(c echo.Context) error {
	stats, err := s.retrieval.FilterStatistics(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleHealth(c echo.Context) error {
	status := s.stats.Health(c.Request().Context())

	components := make(map[string]string, len(status))
	healthy := true
	for name, err := range status {
		if err != nil {
			components[name] = err.Error()
			healthy = false
		} else {
			components[name] = "ok"
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]any{
		"healthy":    healthy,
		"components": components,
	})
}

// httpError maps domain errors to HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyIndex):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrIndexUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
