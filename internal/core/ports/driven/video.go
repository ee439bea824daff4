package driven

import (
	"context"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// CommentOrder values accepted by VideoConnector.FetchComments.
const (
	CommentOrderRelevance = "relevance"
	CommentOrderTime      = "time"
)

// CommentOptions bounds comment pagination for one video.
type CommentOptions struct {
	// MaxComments is the hard cap on collected comments, replies
	// included. Pagination stops exactly at the cap.
	MaxComments int

	// IncludeReplies flattens reply threads into their own records.
	IncludeReplies bool

	// Order is the provider ordering mode (relevance or time).
	Order string
}

// VideoConnector retrieves video metadata, transcripts, and comment
// threads from the video platform.
type VideoConnector interface {
	// CommentsEnabled reports whether the connector is configured with
	// comment-read capability. Without it, FetchComments returns empty.
	CommentsEnabled() bool

	// SearchVideos resolves a query to video metadata records.
	SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.Record, error)

	// FetchTranscript retrieves the transcript for a video.
	// An absent transcript yields (nil, nil): not an error.
	FetchTranscript(ctx context.Context, videoID string) (*domain.Record, error)

	// FetchComments paginates comment threads up to opts.MaxComments.
	// On a permanent per-video condition (comments disabled, quota
	// exhausted, key invalid) or any transient failure it stops and
	// returns whatever was collected, with the error for logging.
	FetchComments(ctx context.Context, videoID string, opts CommentOptions) ([]domain.Record, error)
}
