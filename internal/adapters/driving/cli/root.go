// Package cli implements the ragtube command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/config/file"
	embeddingollama "github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/llm/openai"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driven/vector/flat"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/services"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	configDir   string
)

// app holds the wired services shared by all commands.
type app struct {
	cfg              *configfile.Config
	store            *sqlite.Store
	index            *flat.Index
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService

	retrieval *services.RetrievalService
	ask       *services.AskService
	stats     *services.StatsService
}

var rootCmd = &cobra.Command{
	Use:   "ragtube",
	Short: "Semantic search and Q&A over a YouTube channel's captions",
	Long: `ragtube indexes a YouTube channel's caption archive and answers
questions about it using retrieval-augmented generation.

Captions are chunked, enriched with inferred metadata (category, quality,
technical density), embedded, and stored. Queries embed the question,
find the nearest chunks, and ground an LLM answer in them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default: ~/.ragtube)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newApp wires storage, index, and providers from configuration. The
// vector index is rebuilt from the chunk store so queries work without
// re-embedding. When withLLM is false the LLM service is left nil and
// ask is unavailable.
func newApp(ctx context.Context, withLLM bool) (*app, error) {
	cfg, err := configfile.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	index := flat.New()
	chunks, err := store.LoadChunks(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	if len(chunks) > 0 {
		if err := index.Add(ctx, chunks); err != nil {
			store.Close()
			return nil, fmt.Errorf("rebuilding index: %w", err)
		}
		logger.Info("Rebuilt index with %d chunks", len(chunks))
	}

	embeddingService, err := newEmbeddingService(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	// Without an API key the LLM stays nil and ask is unavailable;
	// search and stats still work.
	var llmService driven.LLMService
	if withLLM && cfg.LLM.APIKey != "" {
		llmService, err = llmopenai.NewLLMService(llmopenai.LLMConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("configuring LLM: %w", err)
		}
	}

	retrieval := services.NewRetrievalService(index, embeddingService)
	retrieval.SetOverFetch(cfg.Retrieval.OverFetch)
	return &app{
		cfg:              cfg,
		store:            store,
		index:            index,
		embeddingService: embeddingService,
		llmService:       llmService,
		retrieval:        retrieval,
		ask:              services.NewAskService(retrieval, llmService),
		stats:            services.NewStatsService(index, embeddingService, llmService),
	}, nil
}

func newEmbeddingService(cfg *configfile.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		svc, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return svc, nil
	case "ollama":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

// close releases the app's resources.
func (a *app) close() {
	if a.llmService != nil {
		a.llmService.Close()
	}
	a.embeddingService.Close()
	a.index.Close()
	a.store.Close()
}
