// Package chunker slices gathered records into fixed-size chunks
// suitable for embedding and retrieval. Chunk IDs are deterministic,
// so re-running the pipeline over the same records produces the same
// chunk set.
package chunker

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Normaliser = (*Chunker)(nil)

// DefaultChunkTokens is the target chunk size in tokens.
const DefaultChunkTokens = 800

// charsPerToken is the character budget assumed per token.
const charsPerToken = 4

// Config holds the chunker configuration.
type Config struct {
	// ChunkTokens is the target chunk size in tokens (default: 800).
	ChunkTokens int
}

// Chunker slices record text into fixed-size chunks.
type Chunker struct {
	chunkChars int
}

// New creates a chunker.
func New(cfg Config) *Chunker {
	if cfg.ChunkTokens <= 0 {
		cfg.ChunkTokens = DefaultChunkTokens
	}
	return &Chunker{chunkChars: cfg.ChunkTokens * charsPerToken}
}

// Normalise converts records into chunks. Records whose source type
// carries no text, or whose text is empty or whitespace-only, are
// skipped. Chunk boundaries back off to rune starts so multi-byte
// characters are never split.
func (c *Chunker) Normalise(ctx context.Context, records []domain.Record, guest string) ([]domain.Chunk, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	var chunks []domain.Chunk
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !rec.SourceType.TextBearing() {
			continue
		}
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		for idx, piece := range c.split(rec.Text) {
			chunks = append(chunks, domain.Chunk{
				ChunkID:    domain.ChunkID(rec, idx),
				Text:       piece,
				SourceType: rec.SourceType,
				VideoID:    rec.VideoID,
				CommentID:  rec.CommentID,
				URL:        rec.URL,
				Guest:      guest,
				CreatedAt:  now,
			})
		}
	}
	return chunks, nil
}

// split cuts text into pieces of at most chunkChars bytes. Every byte
// of the input appears in exactly one piece.
func (c *Chunker) split(text string) []string {
	if len(text) <= c.chunkChars {
		return []string{text}
	}

	var pieces []string
	for len(text) > 0 {
		end := c.chunkChars
		if end >= len(text) {
			pieces = append(pieces, text)
			break
		}
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == 0 {
			end = c.chunkChars
		}
		pieces = append(pieces, text[:end])
		text = text[end:]
	}
	return pieces
}
