package driven

import (
	"context"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// Normaliser derives the Chunk set from the Record set.
// Normalisation is deterministic and idempotent: identical inputs
// always produce identical chunk ids and content in identical order.
type Normaliser interface {
	// Normalise splits every text-bearing record into bounded chunks.
	// Records with empty text or non-text-bearing types are skipped.
	Normalise(ctx context.Context, records []domain.Record, guest string) ([]domain.Chunk, error)
}
