package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

var linksJSON bool

var linksCmd = &cobra.Command{
	Use:   "links [subject]",
	Short: "Discover categorized links for a subject",
	Long: `Issues templated queries per topical category (encyclopedia,
blogs, books, personal site, press, social, podcasts) and prints the
deduplicated link lists without fetching any page bodies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "output link lists as JSON")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}
	subject := strings.Join(args, " ")

	links, err := researchService.Discover(context.Background(), subject)
	if err != nil {
		return fmt.Errorf("link discovery failed: %w", err)
	}

	if linksJSON {
		data, err := json.MarshalIndent(links, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal links: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	total := 0
	for _, category := range driven.DiscoveryCategories() {
		urls := links[category]
		if len(urls) == 0 {
			continue
		}
		cmd.Printf("[%s]\n", category)
		for _, u := range urls {
			cmd.Printf("  %s\n", u)
		}
		cmd.Println()
		total += len(urls)
	}
	if total == 0 {
		cmd.Println("No links found.")
	}
	return nil
}
