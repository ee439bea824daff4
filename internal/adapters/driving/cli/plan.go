package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [subject]",
	Short: "Generate a conversation plan for a subject",
	Long: `Builds a snippet context from the gathered corpus, feeds in the
prior notable-themes artifact when one exists, and writes the
conversation-plan artifact.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if insightService == nil {
		return errors.New("insight service not configured")
	}
	subject := strings.Join(args, " ")

	result, err := insightService.Plan(context.Background(), subject)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}
	cmd.Println(string(result))
	return nil
}
