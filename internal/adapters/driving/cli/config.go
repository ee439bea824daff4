package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// secretKeys are entered without echo and shown masked.
var secretKeys = map[string]bool{
	driven.ConfigYouTubeAPIKey: true,
	driven.ConfigTavilyAPIKey:  true,
	driven.ConfigOpenAIAPIKey:  true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values: API keys, the generation
model, and pipeline bounds.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. API keys may omit the value argument;
they are then read from the terminal without echo.

Known keys:
  youtube.api_key        YouTube Data API key
  tavily.api_key         Secondary search-API key
  openai.api_key         Generation model API key
  openai.model           Generation model name
  pipeline.chunk_tokens  Chunk token budget
  pipeline.max_comments  Per-video comment cap
  pipeline.outputs_dir   Output tree root`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()
	cmd.Printf("  File: %s\n", configStore.Path())
	cmd.Println()

	showKey(cmd, "YouTube API key", driven.ConfigYouTubeAPIKey)
	showKey(cmd, "Tavily API key", driven.ConfigTavilyAPIKey)
	showKey(cmd, "OpenAI API key", driven.ConfigOpenAIAPIKey)

	if model := configStore.GetString(driven.ConfigOpenAIModel); model != "" {
		cmd.Printf("  Model: %s\n", model)
	} else {
		cmd.Printf("  Model: (default)\n")
	}
	if tokens := configStore.GetInt(driven.ConfigChunkTokens); tokens > 0 {
		cmd.Printf("  Chunk tokens: %d\n", tokens)
	}
	if comments := configStore.GetInt(driven.ConfigMaxComments); comments > 0 {
		cmd.Printf("  Max comments: %d\n", comments)
	}
	if dir := configStore.GetString(driven.ConfigOutputsDir); dir != "" {
		cmd.Printf("  Outputs dir: %s\n", dir)
	}
	return nil
}

func showKey(cmd *cobra.Command, label, key string) {
	if val := configStore.GetString(key); val != "" {
		cmd.Printf("  %s: %s\n", label, maskAPIKey(val))
	} else {
		cmd.Printf("  %s: (not set)\n", label)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key := args[0]

	var value string
	if len(args) == 2 {
		value = args[1]
	} else if secretKeys[key] {
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
	} else {
		return fmt.Errorf("value required for key %q", key)
	}

	if value == "" {
		return errors.New("empty value")
	}
	if err := configStore.Set(key, parseValue(value)); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseValue keeps numeric and boolean values typed so the integer
// and boolean getters see them after a round trip through the file.
func parseValue(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
