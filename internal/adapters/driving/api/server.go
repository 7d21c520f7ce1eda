// Package api exposes the retrieval engine over HTTP. Answers can be
// returned whole or streamed as server-sent events.
package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driving"
)

// Server wraps an echo instance with the retrieval, ask, and stats services.
type Server struct {
	echo      *echo.Echo
	retrieval driving.RetrievalService
	ask       driving.AskService
	stats     driving.StatsService
}

// NewServer builds the HTTP server and registers its routes. The ask
// service may be nil, in which case /api/ask reports the LLM unavailable.
func NewServer(
	retrieval driving.RetrievalService,
	ask driving.AskService,
	stats driving.StatsService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s := &Server{
		echo:      e,
		retrieval: retrieval,
		ask:       ask,
		stats:     stats,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.POST("/search", s.handleSearch)
	api.POST("/ask", s.handleAsk)
	api.GET("/stats", s.handleStats)
	api.GET("/filters", s.handleFilters)
	api.GET("/health", s.handleHealth)
}

// Start listens on addr and serves until Shutdown or a fatal error.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
