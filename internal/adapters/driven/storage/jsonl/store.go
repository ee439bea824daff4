// Package jsonl persists the per-subject output tree as line-delimited
// JSON files. This is the canonical on-disk form of a gather run; the
// SQLite store is a queryable mirror of the same data.
//
// Reads are tolerant: a missing file is an empty dataset and lines
// that fail to parse are skipped individually.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DatasetStore = (*Store)(nil)

// maxLineBytes bounds one JSONL line when reading back.
const maxLineBytes = 4 * 1024 * 1024

// Store writes the output tree under root/<subject-slug>/.
type Store struct {
	root string
}

// New creates a JSONL store rooted at the given directory.
// An empty root defaults to "outputs" in the working directory.
func New(root string) *Store {
	if root == "" {
		root = "outputs"
	}
	return &Store{root: root}
}

// Root returns the output tree root.
func (s *Store) Root() string {
	return s.root
}

// subjectDir returns the directory for one subject, creating it along
// with the raw dataset subdirectory.
func (s *Store) subjectDir(subject string) (string, error) {
	dir := filepath.Join(s.root, Slug(subject))
	if err := os.MkdirAll(filepath.Join(dir, "raw"), 0o755); err != nil {
		return "", fmt.Errorf("creating subject directory: %w", err)
	}
	return dir, nil
}

// WriteRecords replaces the named record dataset for a subject.
// Records failing their structural invariants are skipped with a
// warning rather than poisoning the dataset.
func (s *Store) WriteRecords(subject, name string, records []domain.Record) error {
	dir, err := s.subjectDir(subject)
	if err != nil {
		return err
	}
	valid := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			logger.Warn("Skipping invalid %s record: %v", name, err)
			continue
		}
		valid = append(valid, rec)
	}
	return writeLines(filepath.Join(dir, "raw", name+".jsonl"), valid)
}

// ReadRecords loads the named record dataset for a subject.
func (s *Store) ReadRecords(subject, name string) ([]domain.Record, error) {
	return readLines[domain.Record](filepath.Join(s.root, Slug(subject), "raw", name+".jsonl"))
}

// WriteChunks replaces the chunk dataset for a subject.
func (s *Store) WriteChunks(subject string, chunks []domain.Chunk) error {
	dir, err := s.subjectDir(subject)
	if err != nil {
		return err
	}
	return writeLines(filepath.Join(dir, "chunks.jsonl"), chunks)
}

// ReadChunks loads the chunk dataset for a subject.
func (s *Store) ReadChunks(subject string) ([]domain.Chunk, error) {
	return readLines[domain.Chunk](filepath.Join(s.root, Slug(subject), "chunks.jsonl"))
}

// linkLine is one category's link list on disk.
type linkLine struct {
	Category string   `json:"category"`
	URLs     []string `json:"urls"`
}

// WriteLinks replaces the category-keyed link lists for a subject.
// Categories are written in canonical discovery order, unknown
// categories after, alphabetically.
func (s *Store) WriteLinks(subject string, links map[string][]string) error {
	dir, err := s.subjectDir(subject)
	if err != nil {
		return err
	}

	var lines []linkLine
	written := make(map[string]bool)
	for _, category := range driven.DiscoveryCategories() {
		if urls, ok := links[category]; ok {
			lines = append(lines, linkLine{Category: category, URLs: urls})
			written[category] = true
		}
	}
	var rest []string
	for category := range links {
		if !written[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	for _, category := range rest {
		lines = append(lines, linkLine{Category: category, URLs: links[category]})
	}
	return writeLines(filepath.Join(dir, "links.jsonl"), lines)
}

// ReadLinks loads the category-keyed link lists for a subject.
func (s *Store) ReadLinks(subject string) (map[string][]string, error) {
	lines, err := readLines[linkLine](filepath.Join(s.root, Slug(subject), "links.jsonl"))
	if err != nil {
		return nil, err
	}
	links := make(map[string][]string, len(lines))
	for _, line := range lines {
		links[line.Category] = line.URLs
	}
	return links, nil
}

// WriteAbout replaces the biographical summary for a subject.
func (s *Store) WriteAbout(subject string, about domain.AboutSummary) error {
	dir, err := s.subjectDir(subject)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(about, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling about summary: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "about_guest.json"), append(data, '\n'), 0o644)
}

// ReadAbout loads the biographical summary for a subject.
func (s *Store) ReadAbout(subject string) (domain.AboutSummary, error) {
	var about domain.AboutSummary
	data, err := os.ReadFile(filepath.Join(s.root, Slug(subject), "about_guest.json"))
	if errors.Is(err, os.ErrNotExist) {
		return about, nil
	}
	if err != nil {
		return about, fmt.Errorf("reading about summary: %w", err)
	}
	if err := json.Unmarshal(data, &about); err != nil {
		return domain.AboutSummary{}, fmt.Errorf("parsing about summary: %w", err)
	}
	return about, nil
}

// WriteArtifact stores a generation artifact under its stage directory.
func (s *Store) WriteArtifact(subject, stage, name string, data []byte) error {
	dir, err := s.subjectDir(subject)
	if err != nil {
		return err
	}
	stageDir := filepath.Join(dir, stage)
	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		return fmt.Errorf("creating stage directory: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return os.WriteFile(filepath.Join(stageDir, name), data, 0o644)
}

// ReadArtifact loads a previously written artifact.
func (s *Store) ReadArtifact(subject, stage, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, Slug(subject), stage, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}

// Slug converts a subject name to a filesystem-safe directory name.
func Slug(subject string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(subject)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// writeLines writes one JSON object per line.
func writeLines[T any](path string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			f.Close()
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// readLines parses one JSON object per line, skipping lines that do
// not parse. A missing file is an empty dataset.
func readLines[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var items []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item T
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Debug("skipping unparseable line %d in %s: %v", lineNo, filepath.Base(path), err)
			continue
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return items, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return items, nil
}
