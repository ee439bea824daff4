package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

var (
	gatherMaxWeb         int
	gatherMaxVideos      int
	gatherMaxComments    int
	gatherIncludeReplies bool
	gatherCommentOrder   string
	gatherJSON           bool
)

var gatherCmd = &cobra.Command{
	Use:   "gather [subject]",
	Short: "Gather public information about a subject",
	Long: `Runs a full collection pass for the named person: web search and
fetch, categorized link discovery, YouTube videos with transcripts and
comments, and secondary search-API queries. Results are normalised,
chunked, and persisted to the output tree and the local database.

Individual source failures degrade to partial results; the run only
aborts on configuration errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGather,
}

func init() {
	defaults := domain.DefaultGatherOptions()
	gatherCmd.Flags().IntVar(&gatherMaxWeb, "max-web", defaults.MaxWebResults, "maximum web search results")
	gatherCmd.Flags().IntVar(&gatherMaxVideos, "max-videos", defaults.MaxVideos, "maximum videos per query")
	gatherCmd.Flags().IntVar(&gatherMaxComments, "max-comments", defaults.MaxComments, "maximum comments per video")
	gatherCmd.Flags().BoolVar(&gatherIncludeReplies, "include-replies", false, "collect comment replies as their own records")
	gatherCmd.Flags().StringVar(&gatherCommentOrder, "comment-order", defaults.CommentOrder, "comment ordering: relevance or time")
	gatherCmd.Flags().BoolVar(&gatherJSON, "json", false, "output the run summary as JSON")
	rootCmd.AddCommand(gatherCmd)
}

func runGather(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}
	subject := strings.Join(args, " ")

	opts := domain.DefaultGatherOptions()
	opts.MaxWebResults = gatherMaxWeb
	opts.MaxVideos = gatherMaxVideos
	opts.MaxComments = gatherMaxComments
	opts.IncludeReplies = gatherIncludeReplies
	opts.CommentOrder = gatherCommentOrder

	// The configured comment cap applies unless the flag overrides it.
	if !cmd.Flags().Changed("max-comments") && configStore != nil {
		if v := configStore.GetInt(driven.ConfigMaxComments); v > 0 {
			opts.MaxComments = v
		}
	}

	summary, err := researchService.Gather(context.Background(), subject, opts)
	if err != nil {
		return fmt.Errorf("gather failed: %w", err)
	}

	if gatherJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Gather complete for %s (run %s)\n", summary.Subject, summary.RunID)
	cmd.Println()
	cmd.Printf("  Web articles:       %d\n", summary.WebArticles)
	cmd.Printf("  Web links:          %d\n", summary.WebLinks)
	cmd.Printf("  Videos:             %d\n", summary.Videos)
	cmd.Printf("  Transcripts:        %d\n", summary.Transcripts)
	cmd.Printf("  Comments:           %d\n", summary.Comments)
	cmd.Printf("  Search API results: %d\n", summary.SearchAPIResults)
	cmd.Printf("  Chunks:             %d\n", summary.Chunks)
	return nil
}
