package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/config/file"
	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/llm/openai"
	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/storage/jsonl"
	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/storage/sqlite"
	"github.com/castlight-labs/guestscope-cli/internal/adapters/driving/cli"
	"github.com/castlight-labs/guestscope-cli/internal/connectors/tavily"
	"github.com/castlight-labs/guestscope-cli/internal/connectors/web"
	"github.com/castlight-labs/guestscope-cli/internal/connectors/youtube"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/core/services"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
	"github.com/castlight-labs/guestscope-cli/internal/normalisers/chunker"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to initialise config store: %w", err)
	}
	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("failed to initialise prompt store: %w", err)
	}

	webConnector := web.New(web.Config{})

	videoConnector, err := youtube.New(ctx, youtube.Config{
		APIKey: secret(configStore, driven.ConfigYouTubeAPIKey, "YOUTUBE_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialise video connector: %w", err)
	}

	var searchAPI driven.SearchProvider
	if key := secret(configStore, driven.ConfigTavilyAPIKey, "TAVILY_API_KEY"); key != "" {
		searchAPI = tavily.New(tavily.Config{APIKey: key})
	} else {
		logger.Debug("no search API key configured, skipping provider")
	}

	normaliser := chunker.New(chunker.Config{
		ChunkTokens: configStore.GetInt(driven.ConfigChunkTokens),
	})

	datasets := jsonl.New(configStore.GetString(driven.ConfigOutputsDir))

	recordStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer recordStore.Close()

	var generator driven.Generator
	if key := secret(configStore, driven.ConfigOpenAIAPIKey, "OPENAI_API_KEY"); key != "" {
		generator, err = openai.New(openai.Config{
			APIKey: key,
			Model:  configStore.GetString(driven.ConfigOpenAIModel),
		})
		if err != nil {
			return fmt.Errorf("failed to initialise generator: %w", err)
		}
	}

	research := services.NewResearch(
		webConnector, videoConnector, searchAPI,
		normaliser, datasets, recordStore,
	)

	// No semantic index adapter ships yet; augmented insight runs fall
	// back to the standard context.
	builder := services.NewContextBuilder(services.DefaultSelectorConfig(), nil)
	insights := services.NewInsights(datasets, generator, promptStore, builder)

	cli.SetResearchService(research)
	cli.SetInsightService(insights)
	cli.SetConfigStore(configStore)
	cli.SetPromptStore(promptStore)
	cli.SetVersion(version)

	return cli.Execute()
}

// secret reads a credential from config, falling back to the
// environment.
func secret(store driven.ConfigStore, key, envVar string) string {
	if val := store.GetString(key); val != "" {
		return val
	}
	return os.Getenv(envVar)
}
