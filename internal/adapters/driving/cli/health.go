package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backing services",
	Long: `Pings the embedding provider, the LLM provider, and the vector index
and reports per-component status.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	status := a.stats.Health(ctx)
	components := make([]string, 0, len(status))
	for name := range status {
		components = append(components, name)
	}
	sort.Strings(components)

	failed := false
	for _, name := range components {
		if err := status[name]; err != nil {
			cmd.Printf("  %-10s FAIL: %v\n", name, err)
			failed = true
		} else {
			cmd.Printf("  %-10s OK\n", name)
		}
	}
	if failed {
		cmd.Println("\nSome components are unavailable.")
	}
	return nil
}
