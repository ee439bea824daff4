package driven

import (
	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// Dataset names within a subject's output tree.
const (
	DatasetWeb     = "web"
	DatasetYouTube = "youtube"
	DatasetChunks  = "chunks"
)

// DatasetStore reads and writes the per-subject JSONL output tree.
// Reads are tolerant: a missing file is an empty dataset and
// unparseable lines are skipped individually.
type DatasetStore interface {
	// WriteRecords replaces the named record dataset for a subject.
	WriteRecords(subject, name string, records []domain.Record) error

	// ReadRecords loads the named record dataset for a subject.
	ReadRecords(subject, name string) ([]domain.Record, error)

	// WriteChunks replaces the chunk dataset for a subject.
	WriteChunks(subject string, chunks []domain.Chunk) error

	// ReadChunks loads the chunk dataset for a subject.
	ReadChunks(subject string) ([]domain.Chunk, error)

	// WriteLinks replaces the category-keyed link lists for a subject.
	WriteLinks(subject string, links map[string][]string) error

	// ReadLinks loads the category-keyed link lists for a subject.
	ReadLinks(subject string) (map[string][]string, error)

	// WriteAbout replaces the biographical summary for a subject.
	WriteAbout(subject string, about domain.AboutSummary) error

	// ReadAbout loads the biographical summary for a subject.
	// A missing file yields a zero-value summary, not an error.
	ReadAbout(subject string) (domain.AboutSummary, error)

	// WriteArtifact stores a generation artifact (JSON document) under
	// the given stage and name, e.g. ("agent3", "plan.json").
	WriteArtifact(subject, stage, name string, data []byte) error

	// ReadArtifact loads a previously written artifact.
	// A missing artifact yields (nil, nil), not an error.
	ReadArtifact(subject, stage, name string) ([]byte, error)
}

// RecordStore is the idempotent persistence sink. Upserts are keyed on
// subject + source_type + url + ids + content fingerprint so re-runs
// do not duplicate rows.
type RecordStore interface {
	// UpsertRecords stores records for a subject, returning the number
	// of newly inserted rows.
	UpsertRecords(subject string, records []domain.Record) (int, error)

	// UpsertLinks stores a category-keyed link list for a subject.
	UpsertLinks(subject, category string, urls []string) (int, error)

	// ReplaceChunks replaces the derived chunk set for a subject.
	ReplaceChunks(subject string, chunks []domain.Chunk) (int, error)

	// SaveAbout stores the biographical summary for a subject.
	SaveAbout(subject string, about domain.AboutSummary) error

	// SaveRun records a gather-run summary.
	SaveRun(summary domain.GatherSummary) error

	// Close releases resources.
	Close() error
}
