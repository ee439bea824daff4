package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// promptNames lists the known prompt templates in display order.
var promptNames = []string{
	driven.PromptInsightsSystem,
	driven.PromptInsightsUser,
	driven.PromptPlanSystem,
	driven.PromptPlanUser,
	driven.PromptCommentsSystem,
	driven.PromptCommentsUser,
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List customisable prompt templates",
	Long: `Lists the prompt templates used by the generation commands.
Templates live in the prompt directory as editable text files; edits
take effect on the next command.`,
	RunE: runPromptsList,
}

var promptsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a prompt template",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsShow,
}

func init() {
	promptsCmd.AddCommand(promptsShowCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsList(cmd *cobra.Command, _ []string) error {
	if promptStore == nil {
		return errors.New("prompt store not configured")
	}

	cmd.Println("Prompt templates:")
	for _, name := range promptNames {
		cmd.Printf("  %s\n", name)
	}
	if dirHolder, ok := promptStore.(interface{ Dir() string }); ok {
		cmd.Println()
		cmd.Printf("Edit files under %s\n", dirHolder.Dir())
	}
	return nil
}

func runPromptsShow(cmd *cobra.Command, args []string) error {
	if promptStore == nil {
		return errors.New("prompt store not configured")
	}

	promptStore.Reload()
	prompt, err := promptStore.Load(args[0])
	if err != nil {
		return fmt.Errorf("load prompt: %w", err)
	}
	cmd.Println(prompt)
	return nil
}
