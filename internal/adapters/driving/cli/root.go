// Package cli implements the cobra command tree, the driving adapter
// through which users run the research pipeline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driving"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by main before Execute.
var (
	researchService driving.ResearchService
	insightService  driving.InsightService
	configStore     driven.ConfigStore
	promptStore     driven.PromptStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "guestscope",
	Short: "Research a podcast guest from public sources",
	Long: `Guestscope gathers public information about a named person
(web pages, YouTube videos, transcripts, comments, search-API results),
normalises it into a canonical record set, and produces structured
insight artifacts for interview preparation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetResearchService wires the research service used by gather and links.
func SetResearchService(svc driving.ResearchService) {
	researchService = svc
}

// SetInsightService wires the insight service used by the generation commands.
func SetInsightService(svc driving.InsightService) {
	insightService = svc
}

// SetConfigStore wires the configuration store used by the config command.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// SetPromptStore wires the prompt store used by the prompts command.
func SetPromptStore(store driven.PromptStore) {
	promptStore = store
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
