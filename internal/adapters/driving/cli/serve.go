package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driving/api"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the retrieval engine over HTTP:

  POST /api/search   semantic search with optional filters
  POST /api/ask      question answering (set "stream": true for SSE)
  GET  /api/stats    index statistics
  GET  /api/filters  filterable-attribute statistics
  GET  /api/health   backing-service health`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	server := api.NewServer(a.retrieval, a.ask, a.stats)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start(addr)
	}()
	logger.Info("Serving on http://%s", addr)

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
