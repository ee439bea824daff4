package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/config/file"
	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// stubResearch records calls and returns canned results.
type stubResearch struct {
	lastSubject string
	lastOpts    domain.GatherOptions
	links       map[string][]string
}

func (s *stubResearch) Gather(ctx context.Context, subject string, opts domain.GatherOptions) (*domain.GatherSummary, error) {
	s.lastSubject = subject
	s.lastOpts = opts
	return &domain.GatherSummary{
		RunID:       "run-test",
		Subject:     subject,
		WebArticles: 4,
		Comments:    12,
		Chunks:      30,
	}, nil
}

func (s *stubResearch) Discover(ctx context.Context, subject string) (map[string][]string, error) {
	s.lastSubject = subject
	return s.links, nil
}

// stubInsights returns canned artifacts.
type stubInsights struct {
	lastSubject   string
	lastAugmented bool
	lastMax       int
}

func (s *stubInsights) NorthStar(ctx context.Context, subject string, augmented bool) (json.RawMessage, error) {
	s.lastSubject = subject
	s.lastAugmented = augmented
	return json.RawMessage(`{"themes":[]}`), nil
}

func (s *stubInsights) Plan(ctx context.Context, subject string) (json.RawMessage, error) {
	s.lastSubject = subject
	return json.RawMessage(`{"plan":[]}`), nil
}

func (s *stubInsights) AnalyzeComments(ctx context.Context, subject string, maxComments int) (json.RawMessage, error) {
	s.lastSubject = subject
	s.lastMax = maxComments
	return json.RawMessage(`{"sentiment":"positive"}`), nil
}

// setupTestServices wires stub services and returns them with a cleanup.
func setupTestServices(t *testing.T) (*stubResearch, *stubInsights) {
	t.Helper()
	research := &stubResearch{links: map[string][]string{}}
	insights := &stubInsights{}
	SetResearchService(research)
	SetInsightService(insights)
	t.Cleanup(func() {
		researchService = nil
		insightService = nil
	})
	return research, insights
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestGatherCmd_Use(t *testing.T) {
	assert.Equal(t, "gather [subject]", gatherCmd.Use)
}

func TestGatherCmd_RequiresSubject(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "gather")
	assert.Error(t, err)
}

func TestGatherCmd_JoinsSubjectWords(t *testing.T) {
	research, _ := setupTestServices(t)

	out, err := execute(t, "gather", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", research.lastSubject)
	assert.Contains(t, out, "Gather complete for Jane Doe")
	assert.Contains(t, out, "Web articles:       4")
}

func TestGatherCmd_Flags(t *testing.T) {
	research, _ := setupTestServices(t)

	_, err := execute(t, "gather", "--max-videos", "2", "--max-comments", "25", "--include-replies", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, 2, research.lastOpts.MaxVideos)
	assert.Equal(t, 25, research.lastOpts.MaxComments)
	assert.True(t, research.lastOpts.IncludeReplies)
}

func TestGatherCmd_JSONOutput(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "gather", "--json", "Jane Doe")
	require.NoError(t, err)

	var summary domain.GatherSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "run-test", summary.RunID)
}

func TestGatherCmd_NoService(t *testing.T) {
	_, err := execute(t, "gather", "Jane Doe")
	assert.ErrorContains(t, err, "research service not configured")
}

func TestLinksCmd_PrintsCategories(t *testing.T) {
	research, _ := setupTestServices(t)
	research.links = map[string][]string{
		"wikipedia": {"https://en.wikipedia.org/wiki/Jane_Doe"},
		"news":      {"https://news.example.com/jane"},
	}

	out, err := execute(t, "links", "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "[wikipedia]")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Jane_Doe")
	assert.Contains(t, out, "[news]")
}

func TestLinksCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "links", "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "No links found.")
}

func TestInsightsCmd_PrintsArtifact(t *testing.T) {
	_, insights := setupTestServices(t)

	out, err := execute(t, "insights", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", insights.lastSubject)
	assert.False(t, insights.lastAugmented)
	assert.Contains(t, out, `{"themes":[]}`)
}

func TestInsightsCmd_AugmentedFlag(t *testing.T) {
	_, insights := setupTestServices(t)

	_, err := execute(t, "insights", "--augmented", "Jane Doe")
	require.NoError(t, err)
	assert.True(t, insights.lastAugmented)
}

func TestInsightsCommentsCmd(t *testing.T) {
	_, insights := setupTestServices(t)

	out, err := execute(t, "insights", "comments", "--max-comments", "40", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, 40, insights.lastMax)
	assert.Contains(t, out, `{"sentiment":"positive"}`)
}

func TestPlanCmd(t *testing.T) {
	_, insights := setupTestServices(t)

	out, err := execute(t, "plan", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", insights.lastSubject)
	assert.Contains(t, out, `{"plan":[]}`)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "guestscope version test-version-1.0.0")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-1...wxyz", maskAPIKey("sk-1234567890wxyz"))
}

func TestConfigShowCmd_MasksKeys(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigYouTubeAPIKey, "AIzaSyExampleKey123"))
	require.NoError(t, store.Set(driven.ConfigOpenAIModel, "gpt-4o"))
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "AIza...y123")
	assert.NotContains(t, out, "AIzaSyExampleKey123")
	assert.Contains(t, out, "Model: gpt-4o")
	assert.Contains(t, out, "Tavily API key: (not set)")
}

func TestConfigSetCmd_PersistsValue(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	out, err := execute(t, "config", "set", "openai.model", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Contains(t, out, "Set openai.model")

	reloaded, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", reloaded.GetString("openai.model"))
}

func TestConfigSetCmd_RequiresValueForPlainKeys(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	_, err = execute(t, "config", "set", "openai.model")
	assert.ErrorContains(t, err, "value required")
}

func TestPromptsCmd_ListsTemplates(t *testing.T) {
	store, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)
	SetPromptStore(store)
	t.Cleanup(func() { promptStore = nil })

	out, err := execute(t, "prompts")
	require.NoError(t, err)
	for _, name := range promptNames {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, store.Dir())
}

func TestPromptsShowCmd(t *testing.T) {
	store, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)
	SetPromptStore(store)
	t.Cleanup(func() { promptStore = nil })

	out, err := execute(t, "prompts", "show", driven.PromptInsightsSystem)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestPromptsShowCmd_UnknownName(t *testing.T) {
	store, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)
	SetPromptStore(store)
	t.Cleanup(func() { promptStore = nil })

	_, err = execute(t, "prompts", "show", "nonexistent")
	assert.Error(t, err)
}

func TestGatherCmd_UsesConfiguredCommentCap(t *testing.T) {
	research, _ := setupTestServices(t)
	resetFlag(t, gatherCmd, "max-comments")
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigMaxComments, 33))
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	_, err = execute(t, "gather", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, 33, research.lastOpts.MaxComments)
}

// resetFlag restores a flag to its default and clears the changed
// marker, since flag state persists across executions in one process.
func resetFlag(t *testing.T, cmd *cobra.Command, name string) {
	t.Helper()
	flag := cmd.Flags().Lookup(name)
	require.NotNil(t, flag)
	require.NoError(t, flag.Value.Set(flag.DefValue))
	flag.Changed = false
}

func TestGatherCmd_FlagOverridesConfiguredCommentCap(t *testing.T) {
	research, _ := setupTestServices(t)
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigMaxComments, 33))
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	_, err = execute(t, "gather", "--max-comments", "7", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, 7, research.lastOpts.MaxComments)
}

func TestConfigSetCmd_KeepsIntegersTyped(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	SetConfigStore(store)
	t.Cleanup(func() { configStore = nil })

	_, err = execute(t, "config", "set", "pipeline.max_comments", "25")
	require.NoError(t, err)
	assert.Equal(t, 25, store.GetInt(driven.ConfigMaxComments))
}
