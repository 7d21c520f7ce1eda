package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

var (
	askSources     int
	askTemperature float64
	askNoStream    bool
	askFilters     filterFlags
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed videos",
	Long: `Answers a question using retrieval-augmented generation: the most
relevant transcript chunks are retrieved, assembled into a context window,
and an LLM generates an answer grounded in them. Sources are listed with
the answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askSources, "sources", "s", 5, "number of source chunks to retrieve")
	askCmd.Flags().Float64Var(&askTemperature, "temperature", 0, "LLM temperature (0 = default)")
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "wait for the full answer instead of streaming")
	askFilters.register(askCmd)
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	filter, err := askFilters.spec()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	opts := domain.AskOptions{
		Sources:     askSources,
		Temperature: askTemperature,
		Filter:      filter,
	}

	if askNoStream {
		return askOnce(cmd, a, question, opts)
	}
	return askStreaming(cmd, a, question, opts)
}

func askOnce(cmd *cobra.Command, a *app, question string, opts domain.AskOptions) error {
	answer, err := a.ask.Ask(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	printSources(cmd, answer.Sources)
	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("(%.1fs)\n", answer.ProcessingTime.Seconds())
	return nil
}

func askStreaming(cmd *cobra.Command, a *app, question string, opts domain.AskOptions) error {
	events, err := a.ask.AskStream(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var sources []domain.ScoredChunk
	headerDone := false
	for ev := range events {
		switch ev.Type {
		case domain.StreamEventSource:
			if ev.Source != nil {
				sources = append(sources, *ev.Source)
			}
		case domain.StreamEventToken:
			if !headerDone {
				printSources(cmd, sources)
				headerDone = true
			}
			cmd.Print(ev.Content)
		case domain.StreamEventDone:
			if !headerDone {
				printSources(cmd, sources)
			}
			cmd.Println()
		case domain.StreamEventError:
			return errors.New(ev.Content)
		}
	}
	return nil
}

func printSources(cmd *cobra.Command, sources []domain.ScoredChunk) {
	if len(sources) == 0 {
		return
	}
	cmd.Println("Sources:")
	for i := range sources {
		c := sources[i].Chunk
		if c.PublishedAt.IsZero() {
			cmd.Printf("  [%d] %s\n", i+1, c.Title)
		} else {
			cmd.Printf("  [%d] %s (%s)\n", i+1, c.Title, c.PublishedAt.Format("2006-01-02"))
		}
	}
	cmd.Println()
}
