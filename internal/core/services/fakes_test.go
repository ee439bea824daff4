package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/normalisers/chunker"
)

// fakeWeb is a canned WebConnector.
type fakeWeb struct {
	searchURLs     []string
	searchErr      error
	pages          map[string]domain.Record
	links          map[string][]string
	categoryFetch  []domain.Record
	fetchedURLs    []string
	categoryCalled bool
}

func (f *fakeWeb) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	return f.searchURLs, f.searchErr
}

func (f *fakeWeb) Fetch(ctx context.Context, url string) domain.Record {
	f.fetchedURLs = append(f.fetchedURLs, url)
	if rec, ok := f.pages[url]; ok {
		return rec
	}
	return domain.Record{SourceType: domain.SourceWebLink, URL: url}
}

func (f *fakeWeb) Discover(ctx context.Context, subject string) (map[string][]string, error) {
	if f.links == nil {
		return map[string][]string{}, nil
	}
	return f.links, nil
}

func (f *fakeWeb) FetchCategories(ctx context.Context, categories map[string][]string, perCategory int) []domain.Record {
	f.categoryCalled = true
	return f.categoryFetch
}

// fakeVideos is a canned VideoConnector keyed by query.
type fakeVideos struct {
	results     map[string][]domain.Record
	transcripts map[string]*domain.Record
	comments    map[string][]domain.Record
	commentsOn  bool
	queries     []string
}

func (f *fakeVideos) CommentsEnabled() bool { return f.commentsOn }

func (f *fakeVideos) SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.Record, error) {
	f.queries = append(f.queries, query)
	return f.results[query], nil
}

func (f *fakeVideos) FetchTranscript(ctx context.Context, videoID string) (*domain.Record, error) {
	return f.transcripts[videoID], nil
}

func (f *fakeVideos) FetchComments(ctx context.Context, videoID string, opts driven.CommentOptions) ([]domain.Record, error) {
	return f.comments[videoID], nil
}

// fakeSearchAPI serves the same canned records for every intent.
type fakeSearchAPI struct {
	records []domain.Record
	err     error
}

func (f *fakeSearchAPI) Overview(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	return f.records, f.err
}

func (f *fakeSearchAPI) BooksAndArticles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	return f.records, f.err
}

func (f *fakeSearchAPI) SocialHandles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	return f.records, f.err
}

// fakeDatasets is an in-memory DatasetStore.
type fakeDatasets struct {
	records   map[string][]domain.Record
	chunks    []domain.Chunk
	links     map[string][]string
	about     domain.AboutSummary
	artifacts map[string][]byte
}

func newFakeDatasets() *fakeDatasets {
	return &fakeDatasets{
		records:   make(map[string][]domain.Record),
		artifacts: make(map[string][]byte),
	}
}

func artifactKey(stage, name string) string { return stage + "/" + name }

func (f *fakeDatasets) WriteRecords(subject, name string, records []domain.Record) error {
	f.records[name] = records
	return nil
}

func (f *fakeDatasets) ReadRecords(subject, name string) ([]domain.Record, error) {
	return f.records[name], nil
}

func (f *fakeDatasets) WriteChunks(subject string, chunks []domain.Chunk) error {
	f.chunks = chunks
	return nil
}

func (f *fakeDatasets) ReadChunks(subject string) ([]domain.Chunk, error) {
	return f.chunks, nil
}

func (f *fakeDatasets) WriteLinks(subject string, links map[string][]string) error {
	f.links = links
	return nil
}

func (f *fakeDatasets) ReadLinks(subject string) (map[string][]string, error) {
	return f.links, nil
}

func (f *fakeDatasets) WriteAbout(subject string, about domain.AboutSummary) error {
	f.about = about
	return nil
}

func (f *fakeDatasets) ReadAbout(subject string) (domain.AboutSummary, error) {
	return f.about, nil
}

func (f *fakeDatasets) WriteArtifact(subject, stage, name string, data []byte) error {
	f.artifacts[artifactKey(stage, name)] = data
	return nil
}

func (f *fakeDatasets) ReadArtifact(subject, stage, name string) ([]byte, error) {
	return f.artifacts[artifactKey(stage, name)], nil
}

// fakeRecordStore is an in-memory RecordStore.
type fakeRecordStore struct {
	upserted []domain.Record
	links    map[string][]string
	chunks   []domain.Chunk
	about    domain.AboutSummary
	runs     []domain.GatherSummary
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{links: make(map[string][]string)}
}

func (f *fakeRecordStore) UpsertRecords(subject string, records []domain.Record) (int, error) {
	f.upserted = append(f.upserted, records...)
	return len(records), nil
}

func (f *fakeRecordStore) UpsertLinks(subject, category string, urls []string) (int, error) {
	f.links[category] = urls
	return len(urls), nil
}

func (f *fakeRecordStore) ReplaceChunks(subject string, chunks []domain.Chunk) (int, error) {
	f.chunks = chunks
	return len(chunks), nil
}

func (f *fakeRecordStore) SaveAbout(subject string, about domain.AboutSummary) error {
	f.about = about
	return nil
}

func (f *fakeRecordStore) SaveRun(summary domain.GatherSummary) error {
	f.runs = append(f.runs, summary)
	return nil
}

func (f *fakeRecordStore) Close() error { return nil }

// fakeGenerator echoes a canned payload and records its inputs.
type fakeGenerator struct {
	result  json.RawMessage
	err     error
	systems []string
	users   []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	f.systems = append(f.systems, system)
	f.users = append(f.users, user)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

// fakePrompts serves templates from a map.
type fakePrompts struct {
	prompts map[string]string
}

func (f *fakePrompts) Load(name string) (string, error) {
	tmpl, ok := f.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", name)
	}
	return tmpl, nil
}

func (f *fakePrompts) Reload() {}

func testNormaliser() driven.Normaliser {
	return chunker.New(chunker.Config{})
}
