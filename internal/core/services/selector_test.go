package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// fakeIndex is a canned SemanticIndex for selector tests.
type fakeIndex struct {
	hits    []driven.SemanticHit
	err     error
	queries []string
}

func (f *fakeIndex) Query(ctx context.Context, query string, k int) ([]driven.SemanticHit, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.hits) > k {
		return f.hits[:k], nil
	}
	return f.hits, nil
}

func comment(id string, likes int, text string) domain.Record {
	return domain.Record{
		SourceType: domain.SourceYouTubeComment,
		VideoID:    "abc123",
		CommentID:  id,
		Author:     "viewer",
		LikeCount:  likes,
		Text:       text,
	}
}

func TestBuild_PriorityOrder(t *testing.T) {
	records := []domain.Record{
		{SourceType: domain.SourceYouTubeTranscript, VideoID: "vid1", Title: "Talk", Text: "transcript text"},
		comment("c1", 3, "first comment"),
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a", Title: "Article", Text: "article text"},
	}
	about := domain.AboutSummary{Summary: "Jane Doe is a writer."}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, about, false)

	require.Len(t, snippets, 4)
	assert.Equal(t, "https://example.com/a", snippets[0].Source)
	assert.Equal(t, "about_guest", snippets[1].Source)
	assert.Equal(t, "About Jane Doe", snippets[1].Title)
	assert.Contains(t, snippets[2].Title, "Comment")
	assert.Contains(t, snippets[3].Title, "Transcript")
}

func TestBuild_ArticlesBeforeSearchAPIResults(t *testing.T) {
	records := []domain.Record{
		{SourceType: domain.SourceTavilyResult, URL: "https://example.net/t1", Text: "search blurb one"},
		{SourceType: domain.SourceTavilyResult, URL: "https://example.net/t2", Text: "search blurb two"},
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a1", Text: "article one"},
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a2", Text: "article two"},
	}

	b := NewContextBuilder(SelectorConfig{MaxWebSnippets: 3}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, false)

	require.Len(t, snippets, 3)
	assert.Equal(t, "https://example.com/a1", snippets[0].Source)
	assert.Equal(t, "https://example.com/a2", snippets[1].Source)
	assert.Equal(t, "https://example.net/t1", snippets[2].Source)
}

func TestBuild_CommentRankingStable(t *testing.T) {
	records := []domain.Record{
		comment("a", 5, "comment a"),
		comment("b", 20, "comment b"),
		comment("c", 20, "comment c"),
		comment("d", 1, "comment d"),
	}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, false)

	require.Len(t, snippets, 4)
	assert.Equal(t, "comment b", snippets[0].Text)
	assert.Equal(t, "comment c", snippets[1].Text)
	assert.Equal(t, "comment a", snippets[2].Text)
	assert.Equal(t, "comment d", snippets[3].Text)
}

func TestBuild_CommentSourceIsWatchURL(t *testing.T) {
	records := []domain.Record{comment("c1", 1, "nice")}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, false)

	require.Len(t, snippets, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", snippets[0].Source)
}

func TestBuild_TruncationBounds(t *testing.T) {
	long := strings.Repeat("x", 5000)
	records := []domain.Record{
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a", Text: long},
		comment("c1", 1, long),
		{SourceType: domain.SourceYouTubeTranscript, VideoID: "vid1", Text: long},
	}
	about := domain.AboutSummary{Summary: long}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, about, false)

	require.Len(t, snippets, 4)
	assert.LessOrEqual(t, len(snippets[0].Text), 1200) // web
	assert.LessOrEqual(t, len(snippets[1].Text), 1200) // bio
	assert.LessOrEqual(t, len(snippets[2].Text), 500)  // comment
	assert.LessOrEqual(t, len(snippets[3].Text), 1200) // transcript
}

func TestBuild_CategoryCaps(t *testing.T) {
	var records []domain.Record
	for i := 0; i < 40; i++ {
		records = append(records, domain.Record{
			SourceType: domain.SourceWebArticle,
			URL:        "https://example.com/a",
			Text:       "article",
		})
	}
	for i := 0; i < 80; i++ {
		records = append(records, comment("c", i, "comment"))
	}
	for i := 0; i < 25; i++ {
		records = append(records, domain.Record{
			SourceType: domain.SourceYouTubeTranscript,
			VideoID:    "vid1",
			Text:       "transcript",
		})
	}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{Summary: "bio"}, false)

	assert.Len(t, snippets, 15+1+50+10)
}

func TestBuild_SkipsUnresolvableTranscripts(t *testing.T) {
	records := []domain.Record{
		{SourceType: domain.SourceYouTubeTranscript, Text: "orphan transcript"},
		{SourceType: domain.SourceYouTubeTranscript, VideoID: "vid2", Text: "good transcript"},
	}

	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, false)

	require.Len(t, snippets, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid2", snippets[0].Source)
}

func TestBuild_AugmentedPrependsProbes(t *testing.T) {
	index := &fakeIndex{hits: []driven.SemanticHit{
		{ChunkID: "x_0", Text: "indexed text", URL: "https://example.com/x"},
	}}
	records := []domain.Record{
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a", Text: "article"},
	}

	b := NewContextBuilder(SelectorConfig{}, index)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, true)

	// 4 probes x 1 hit each, then the article.
	require.Len(t, snippets, 5)
	assert.Equal(t, "https://example.com/x", snippets[0].Source)
	assert.Equal(t, "https://example.com/a", snippets[4].Source)

	require.Len(t, index.queries, 4)
	assert.Equal(t, "Jane Doe biography", index.queries[0])
	assert.Equal(t, "Jane Doe controversies", index.queries[1])
	assert.Equal(t, "Jane Doe achievements", index.queries[2])
	assert.Equal(t, "Jane Doe timeline", index.queries[3])
}

func TestBuild_AugmentedCap(t *testing.T) {
	var hits []driven.SemanticHit
	for i := 0; i < 3; i++ {
		hits = append(hits, driven.SemanticHit{Text: "hit", URL: "https://example.com/h"})
	}
	index := &fakeIndex{hits: hits}

	var records []domain.Record
	for i := 0; i < 200; i++ {
		records = append(records, comment("c", i, "comment"))
	}

	b := NewContextBuilder(SelectorConfig{AugmentedCap: 20}, index)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, true)

	assert.Len(t, snippets, 20)
	// Probe results keep priority placement.
	assert.Equal(t, "https://example.com/h", snippets[0].Source)
}

func TestBuild_AugmentedSilentlySkipsOnIndexFailure(t *testing.T) {
	index := &fakeIndex{err: errors.New("index offline")}
	records := []domain.Record{
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a", Text: "article"},
	}

	b := NewContextBuilder(SelectorConfig{}, index)
	snippets := b.Build(context.Background(), "Jane Doe", records, domain.AboutSummary{}, true)

	require.Len(t, snippets, 1)
	assert.Equal(t, "https://example.com/a", snippets[0].Source)
}

func TestBuild_NilIndexAugmentedFallsBack(t *testing.T) {
	b := NewContextBuilder(SelectorConfig{}, nil)
	snippets := b.Build(context.Background(), "Jane Doe", []domain.Record{
		{SourceType: domain.SourceWebArticle, URL: "https://example.com/a", Text: "article"},
	}, domain.AboutSummary{}, true)

	assert.Len(t, snippets, 1)
}
