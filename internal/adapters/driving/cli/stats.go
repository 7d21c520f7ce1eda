package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long: `Summarises the indexed corpus: chunk and video counts, the embedding
dimension and models in use, and the distribution of categories, quality
levels, and caption coverage across videos.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	index, err := a.stats.IndexStats(ctx)
	if err != nil {
		return fmt.Errorf("reading index stats: %w", err)
	}

	if index.ChunkCount == 0 {
		cmd.Println("Index is empty. Run `ragtube ingest` first.")
		return nil
	}

	filters, err := a.retrieval.FilterStatistics(ctx)
	if err != nil {
		return fmt.Errorf("reading filter stats: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(map[string]any{
			"index":   index,
			"filters": filters,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Chunks:    %d\n", index.ChunkCount)
	cmd.Printf("Videos:    %d\n", index.VideoCount)
	cmd.Printf("Dimension: %d\n", index.Dimension)
	cmd.Printf("Embedding: %s\n", index.EmbeddingModel)
	if index.LLMModel != "" {
		cmd.Printf("LLM:       %s\n", index.LLMModel)
	}
	cmd.Println()

	cmd.Println("Categories:")
	for _, cat := range domain.Categories() {
		if count := filters.Categories[cat]; count > 0 {
			cmd.Printf("  %-14s %d\n", cat, count)
		}
	}
	cmd.Println()

	cmd.Println("Quality levels:")
	for _, level := range []domain.QualityLevel{
		domain.QualityHigh, domain.QualityMedium, domain.QualityLow, domain.QualityNone,
	} {
		if count := filters.QualityLevels[level]; count > 0 {
			cmd.Printf("  %-14s %d\n", level.String(), count)
		}
	}
	cmd.Println()

	cov := filters.CaptionCoverage
	cmd.Printf("Caption coverage: %d/%d videos (%.1f%%)\n",
		cov.WithCaptions, cov.WithCaptions+cov.WithoutCaptions, cov.Percentage)

	dr := filters.DateRange
	if !dr.Earliest.IsZero() {
		cmd.Printf("Date range: %s to %s\n",
			dr.Earliest.Format("2006-01-02"), dr.Latest.Format("2006-01-02"))
	}
	return nil
}
