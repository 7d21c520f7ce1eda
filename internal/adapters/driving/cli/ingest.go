package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/connectors/captions"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/services"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/postprocessors"
)

var (
	ingestForce bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index the caption archive",
	Long: `Reads caption files from the configured archive directory, chunks
and enriches them, embeds the chunks, and stores them in the index.
Videos already indexed are skipped unless --force is set.

With --watch the command keeps running and ingests caption files as they
appear in the archive directory.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestForce, "force", "f", false, "re-ingest videos already indexed")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "watch the archive directory for new captions")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	source, err := captions.New(a.cfg.Captions.Dir)
	if err != nil {
		return fmt.Errorf("opening caption archive: %w", err)
	}
	defer source.Close()

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(
		postprocessors.DefaultSteps(a.cfg.Chunking.Size, a.cfg.Chunking.Overlap))
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	ingest := services.NewIngestService(source, pipeline, a.embeddingService, a.index, a.store)

	report, err := ingest.Ingest(ctx, ingestForce)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Processed %d video(s), skipped %d, indexed %d chunk(s)\n",
		report.VideosProcessed, report.VideosSkipped, report.ChunksIndexed)

	if !ingestWatch {
		return nil
	}

	watchCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new captions (Ctrl-C to stop)\n", a.cfg.Captions.Dir)
	if err := ingest.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
