package sqlite

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/castlight-labs/guestscope-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is the SQLite persistence sink. It mirrors the JSONL output
// tree into a queryable database with unique-constraint upserts, so
// re-running a gather never duplicates rows.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.guestscope/data/research.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".guestscope", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "research.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// subjectID returns the id for a subject, inserting the row if needed.
func (s *Store) subjectID(tx *sql.Tx, subject string) (int64, error) {
	if _, err := tx.Exec("INSERT OR IGNORE INTO subjects (name) VALUES (?)", subject); err != nil {
		return 0, fmt.Errorf("inserting subject: %w", err)
	}
	var id int64
	if err := tx.QueryRow("SELECT id FROM subjects WHERE name = ?", subject).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolving subject id: %w", err)
	}
	return id, nil
}

// UpsertRecords stores records for a subject. Rows matching an already
// stored (source_type, url, video_id, comment_id, text_hash) key are
// ignored; the returned count covers newly inserted rows only.
func (s *Store) UpsertRecords(subject string, records []domain.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	subjectID, err := s.subjectID(tx, subject)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO records (
			subject_id, source_type, url, title, text,
			video_id, comment_id, author, channel,
			like_count, reply_count, published_at,
			domain, fetched_at, text_hash, estimated_tokens
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			logger.Warn("Skipping invalid record: %v", err)
			continue
		}
		res, err := stmt.Exec(
			subjectID, string(rec.SourceType), rec.URL, rec.Title, rec.Text,
			rec.VideoID, rec.CommentID, rec.Author, rec.Channel,
			rec.LikeCount, rec.ReplyCount, rec.PublishedAt,
			rec.Domain, rec.FetchedAt, rec.TextHash, rec.EstimatedTokens,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting inserted rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing records: %w", err)
	}
	return inserted, nil
}

// UpsertLinks stores a category's link list for a subject.
func (s *Store) UpsertLinks(subject, category string, urls []string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	subjectID, err := s.subjectID(tx, subject)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, u := range urls {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO links (subject_id, category, url) VALUES (?, ?, ?)",
			subjectID, category, u,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting link: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting inserted rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing links: %w", err)
	}
	return inserted, nil
}

// ReplaceChunks replaces the derived chunk set for a subject. Chunks
// are regenerated wholesale on every run, so the old set is dropped
// rather than diffed.
func (s *Store) ReplaceChunks(subject string, chunks []domain.Chunk) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	subjectID, err := s.subjectID(tx, subject)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec("DELETE FROM chunks WHERE subject_id = ?", subjectID); err != nil {
		return 0, fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (
			subject_id, chunk_id, text, source_type,
			video_id, comment_id, url, guest, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ch := range chunks {
		if _, err := stmt.Exec(
			subjectID, ch.ChunkID, ch.Text, string(ch.SourceType),
			ch.VideoID, ch.CommentID, ch.URL, ch.Guest, ch.CreatedAt,
		); err != nil {
			return 0, fmt.Errorf("inserting chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing chunks: %w", err)
	}
	return len(chunks), nil
}

// SaveAbout stores the biographical summary for a subject.
func (s *Store) SaveAbout(subject string, about domain.AboutSummary) error {
	sourcesJSON, err := json.Marshal(about.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	subjectID, err := s.subjectID(tx, subject)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO about (subject_id, summary, sources, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(subject_id) DO UPDATE SET
			summary = excluded.summary,
			sources = excluded.sources,
			updated_at = excluded.updated_at
	`, subjectID, about.Summary, string(sourcesJSON))
	if err != nil {
		return fmt.Errorf("saving about summary: %w", err)
	}
	return tx.Commit()
}

// SaveRun records a gather-run summary.
func (s *Store) SaveRun(summary domain.GatherSummary) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO runs (
			run_id, subject, web_articles, web_links, videos,
			transcripts, comments, search_api_results, chunks,
			started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, summary.RunID, summary.Subject, summary.WebArticles, summary.WebLinks,
		summary.Videos, summary.Transcripts, summary.Comments,
		summary.SearchAPIResults, summary.Chunks,
		summary.StartedAt, summary.FinishedAt)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}
