package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driving"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Insights implements the interface.
var _ driving.InsightService = (*Insights)(nil)

// Artifact locations within a subject's output tree. The stage names
// match the pipeline steps that produce them.
const (
	stageInsights = "agent2"
	stagePlan     = "agent3"

	artifactNorthStar = "north_star.json"
	artifactPlan      = "plan.json"
	artifactComments  = "comment_analysis.json"
)

// commentSampleTruncate bounds one comment's text in the analysis
// sample sent to the generator.
const commentSampleTruncate = 600

// defaultCommentSample is the comment count analysed when the caller
// does not specify one.
const defaultCommentSample = 100

// Insights runs the generation stages over a gathered corpus. The
// generator does the actual writing; this service assembles bounded
// context, calls it, and persists the artifacts it returns.
type Insights struct {
	datasets  driven.DatasetStore
	generator driven.Generator
	prompts   driven.PromptStore
	builder   *ContextBuilder
}

// NewInsights creates the insight service.
func NewInsights(
	datasets driven.DatasetStore,
	generator driven.Generator,
	prompts driven.PromptStore,
	builder *ContextBuilder,
) *Insights {
	return &Insights{
		datasets:  datasets,
		generator: generator,
		prompts:   prompts,
		builder:   builder,
	}
}

// NorthStar produces the notable-themes artifact for a subject.
func (s *Insights) NorthStar(ctx context.Context, subject string, augmented bool) (json.RawMessage, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	records, about, err := s.loadCorpus(subject)
	if err != nil {
		return nil, err
	}
	snippets := capSnippets(s.builder.Build(ctx, subject, records, about, augmented), s.builder.config.InsightsSnippets)
	snippetsJSON, err := json.Marshal(snippets)
	if err != nil {
		return nil, fmt.Errorf("marshal snippets: %w", err)
	}
	logger.Info("Generating themes from %d snippets (model %s)", len(snippets), s.generator.ModelName())

	system, user, err := s.renderPrompts(driven.PromptInsightsSystem, driven.PromptInsightsUser, subject, string(snippetsJSON))
	if err != nil {
		return nil, err
	}
	result, err := s.generator.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate themes: %w", err)
	}
	if err := s.datasets.WriteArtifact(subject, stageInsights, artifactNorthStar, result); err != nil {
		return nil, fmt.Errorf("write themes artifact: %w", err)
	}
	return result, nil
}

// Plan produces the conversation-plan artifact, feeding in the prior
// themes artifact when one exists.
func (s *Insights) Plan(ctx context.Context, subject string) (json.RawMessage, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	records, about, err := s.loadCorpus(subject)
	if err != nil {
		return nil, err
	}
	snippets := capSnippets(s.builder.Build(ctx, subject, records, about, false), s.builder.config.PlanSnippets)
	snippetsJSON, err := json.Marshal(snippets)
	if err != nil {
		return nil, fmt.Errorf("marshal snippets: %w", err)
	}

	prior, err := s.datasets.ReadArtifact(subject, stageInsights, artifactNorthStar)
	if err != nil {
		return nil, fmt.Errorf("read themes artifact: %w", err)
	}
	if len(prior) == 0 {
		logger.Debug("No prior themes artifact for %q", subject)
		prior = []byte("{}")
	}

	system, user, err := s.renderPrompts(driven.PromptPlanSystem, driven.PromptPlanUser, subject, string(prior), string(snippetsJSON))
	if err != nil {
		return nil, err
	}
	result, err := s.generator.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	if err := s.datasets.WriteArtifact(subject, stagePlan, artifactPlan, result); err != nil {
		return nil, fmt.Errorf("write plan artifact: %w", err)
	}
	return result, nil
}

// capSnippets applies a stage's final model-context cap.
func capSnippets(snippets []domain.Snippet, limit int) []domain.Snippet {
	if limit > 0 && len(snippets) > limit {
		return snippets[:limit]
	}
	return snippets
}

// commentSample is the compacted shape sent to the generator.
type commentSample struct {
	Likes int    `json:"likes"`
	Text  string `json:"text"`
}

// AnalyzeComments produces the audience-sentiment artifact from the
// most-liked comments.
func (s *Insights) AnalyzeComments(ctx context.Context, subject string, maxComments int) (json.RawMessage, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if maxComments <= 0 {
		maxComments = defaultCommentSample
	}

	records, err := s.datasets.ReadRecords(subject, driven.DatasetYouTube)
	if err != nil {
		return nil, fmt.Errorf("read youtube records: %w", err)
	}
	var comments []domain.Record
	for _, rec := range records {
		if rec.SourceType.CommentFamily() && rec.Text != "" {
			comments = append(comments, rec)
		}
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("%w: no comments gathered for %q", domain.ErrNotFound, subject)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].LikeCount > comments[j].LikeCount
	})
	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}

	sample := make([]commentSample, 0, len(comments))
	for _, rec := range comments {
		sample = append(sample, commentSample{
			Likes: rec.LikeCount,
			Text:  domain.Truncate(rec.Text, commentSampleTruncate),
		})
	}
	sampleJSON, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("marshal comment sample: %w", err)
	}
	logger.Info("Analysing %d comments (model %s)", len(sample), s.generator.ModelName())

	system, user, err := s.renderPrompts(driven.PromptCommentsSystem, driven.PromptCommentsUser, string(sampleJSON))
	if err != nil {
		return nil, err
	}
	result, err := s.generator.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("analyse comments: %w", err)
	}
	if err := s.datasets.WriteArtifact(subject, stagePlan, artifactComments, result); err != nil {
		return nil, fmt.Errorf("write comment analysis: %w", err)
	}
	return result, nil
}

// loadCorpus reads the persisted record datasets and about summary.
// An entirely empty corpus is an error; the caller needs a gather run
// first.
func (s *Insights) loadCorpus(subject string) ([]domain.Record, domain.AboutSummary, error) {
	web, err := s.datasets.ReadRecords(subject, driven.DatasetWeb)
	if err != nil {
		return nil, domain.AboutSummary{}, fmt.Errorf("read web records: %w", err)
	}
	yt, err := s.datasets.ReadRecords(subject, driven.DatasetYouTube)
	if err != nil {
		return nil, domain.AboutSummary{}, fmt.Errorf("read youtube records: %w", err)
	}
	about, err := s.datasets.ReadAbout(subject)
	if err != nil {
		return nil, domain.AboutSummary{}, fmt.Errorf("read about summary: %w", err)
	}
	records := append(web, yt...)
	if len(records) == 0 && about.Summary == "" {
		return nil, domain.AboutSummary{}, fmt.Errorf("%w: no gathered corpus for %q, run gather first", domain.ErrNotFound, subject)
	}
	return records, about, nil
}

// renderPrompts loads a system/user template pair and fills the user
// template's placeholders.
func (s *Insights) renderPrompts(systemName, userName string, args ...any) (string, string, error) {
	system, err := s.prompts.Load(systemName)
	if err != nil {
		return "", "", fmt.Errorf("load %s prompt: %w", systemName, err)
	}
	userTmpl, err := s.prompts.Load(userName)
	if err != nil {
		return "", "", fmt.Errorf("load %s prompt: %w", userName, err)
	}
	return system, fmt.Sprintf(userTmpl, args...), nil
}
