package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

var (
	searchCount   int
	searchJSON    bool
	searchFilters filterFlags
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed transcripts",
	Long: `Performs semantic search across all indexed transcript chunks.
The query is embedded and matched against the vector index; results are
ordered by similarity and can be narrowed with metadata filters.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchFilters.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	filter, err := searchFilters.spec()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.retrieval.Retrieve(ctx, query, searchCount, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results, filter)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredChunk, filter *domain.FilterSpec) error {
	if filter != nil {
		cmd.Printf("Filters: %s\n", filter.Summary())
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		c := results[i].Chunk

		cmd.Printf("  [%d] %s (%.3f)\n", i+1, c.Title, results[i].Score)
		if !c.PublishedAt.IsZero() {
			cmd.Printf("      Published: %s  Category: %s  Quality: %s\n",
				c.PublishedAt.Format("2006-01-02"), c.Category, c.QualityLevel)
		} else {
			cmd.Printf("      Category: %s  Quality: %s\n", c.Category, c.QualityLevel)
		}
		cmd.Printf("      %s\n", snippet(c.Text, 200))
		cmd.Printf("      %s\n", c.URL)
		cmd.Println()
	}

	return nil
}

// snippet truncates text at a word boundary near max characters.
func snippet(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && text[cut] != ' ' {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return text[:cut] + "..."
}
