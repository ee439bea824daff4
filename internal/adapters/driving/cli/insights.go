package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	insightsAugmented   bool
	insightsMaxComments int
)

var insightsCmd = &cobra.Command{
	Use:   "insights [subject]",
	Short: "Generate notable-themes insights for a subject",
	Long: `Builds a bounded snippet context from the gathered corpus, sends
it to the generation model, and writes the notable-themes artifact.

With --augmented and a semantic index available, canned probe queries
(biography, controversies, achievements, timeline) are run against the
index and their results are given priority placement in the context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsights,
}

var insightsCommentsCmd = &cobra.Command{
	Use:   "comments [subject]",
	Short: "Analyse audience sentiment from gathered comments",
	Long: `Ranks the gathered YouTube comments by like count, compacts the
top of the list, and asks the generation model for an audience-sentiment
analysis. Requires a prior gather run with comment collection enabled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsightsComments,
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsAugmented, "augmented", false, "augment context with semantic index probes")
	insightsCommentsCmd.Flags().IntVar(&insightsMaxComments, "max-comments", 100, "comments to include in the analysis sample")
	insightsCmd.AddCommand(insightsCommentsCmd)
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	if insightService == nil {
		return errors.New("insight service not configured")
	}
	subject := strings.Join(args, " ")

	result, err := insightService.NorthStar(context.Background(), subject, insightsAugmented)
	if err != nil {
		return fmt.Errorf("insight generation failed: %w", err)
	}
	cmd.Println(string(result))
	return nil
}

func runInsightsComments(cmd *cobra.Command, args []string) error {
	if insightService == nil {
		return errors.New("insight service not configured")
	}
	subject := strings.Join(args, " ")

	result, err := insightService.AnalyzeComments(context.Background(), subject, insightsMaxComments)
	if err != nil {
		return fmt.Errorf("comment analysis failed: %w", err)
	}
	cmd.Println(string(result))
	return nil
}
