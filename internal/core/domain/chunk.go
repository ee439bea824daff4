package domain

import "fmt"

// Chunk is a bounded-length fragment of a Record's text, derived for
// indexing and retrieval. Chunks are never mutated; each run derives
// them wholesale from the current Record set.
type Chunk struct {
	// ChunkID is deterministic for a given input: the record's
	// identifying fields plus the slice index. Identical inputs
	// always yield identical ids.
	ChunkID string `json:"chunk_id"`

	// Text is the sliced content.
	Text string `json:"text"`

	// SourceType is carried over from the originating Record.
	SourceType SourceType `json:"source_type"`

	// VideoID is carried over from the originating Record, if any.
	VideoID string `json:"video_id,omitempty"`

	// CommentID is carried over from the originating Record, if any.
	CommentID string `json:"comment_id,omitempty"`

	// URL is carried over from the originating Record, if any.
	URL string `json:"url,omitempty"`

	// Guest is the subject name, threading context through the pipeline.
	Guest string `json:"guest"`

	// CreatedAt is an ISO-8601 timestamp of the normalisation run.
	CreatedAt string `json:"created_at"`
}

// ChunkID derives the stable identifier for the idx-th slice of a
// record's text. YouTube records are identified by their video and
// comment ids; records without either carry a short fingerprint of
// the URL (or, absent a URL, the text) so two articles never share
// an id. The format is shared with persisted data and must not
// change between runs.
func ChunkID(rec Record, idx int) string {
	videoID := rec.VideoID
	if videoID == "" && rec.CommentID == "" {
		src := rec.URL
		if src == "" {
			src = rec.Text
		}
		videoID = ShortHash(src)
	}
	return fmt.Sprintf("%s_%s_%s_%d", rec.SourceType, videoID, rec.CommentID, idx)
}
