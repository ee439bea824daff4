package domain

import (
	"fmt"
	"strings"
)

// SourceType discriminates which connector produced a Record and
// which optional fields are meaningful on it.
type SourceType string

// The closed set of source types.
const (
	// SourceWebArticle is a fetched web page with extracted body text.
	SourceWebArticle SourceType = "web_article"

	// SourceWebLink is a discovered URL whose body could not be fetched.
	// Text is always empty.
	SourceWebLink SourceType = "web_link"

	// SourceYouTubeVideo is video metadata (id, title, channel).
	SourceYouTubeVideo SourceType = "youtube_video"

	// SourceYouTubeTranscript is the spoken text of a video.
	SourceYouTubeTranscript SourceType = "youtube_transcript"

	// SourceYouTubeComment is a top-level comment on a video.
	SourceYouTubeComment SourceType = "youtube_comment"

	// SourceYouTubeCommentReply is a reply within a comment thread.
	SourceYouTubeCommentReply SourceType = "youtube_comment_reply"

	// SourceTavilyResult is a result from the secondary search API.
	SourceTavilyResult SourceType = "tavily_result"
)

// commentFamilyPrefix identifies both comment source types.
const commentFamilyPrefix = "youtube_comment"

// Valid reports whether t is one of the known source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceWebArticle, SourceWebLink, SourceYouTubeVideo,
		SourceYouTubeTranscript, SourceYouTubeComment,
		SourceYouTubeCommentReply, SourceTavilyResult:
		return true
	}
	return false
}

// CommentFamily reports whether t is a comment or a comment reply.
func (t SourceType) CommentFamily() bool {
	return strings.HasPrefix(string(t), commentFamilyPrefix)
}

// TextBearing reports whether Records of this type carry chunkable text.
// Video metadata and bare links are not chunked.
func (t SourceType) TextBearing() bool {
	switch t {
	case SourceWebArticle, SourceYouTubeTranscript,
		SourceYouTubeComment, SourceYouTubeCommentReply:
		return true
	}
	return false
}

// Record is the canonical unit flowing through the pipeline.
// Connectors produce Records; everything downstream only reads them.
type Record struct {
	// SourceType determines which optional fields are meaningful.
	SourceType SourceType `json:"source_type"`

	// URL is the provenance locator. May be empty for derived records.
	URL string `json:"url,omitempty"`

	// Title is the human-readable title, if any.
	Title string `json:"title,omitempty"`

	// Text is the primary content payload. Empty for link-only records.
	Text string `json:"text,omitempty"`

	// VideoID links YouTube-family records to their video.
	VideoID string `json:"video_id,omitempty"`

	// CommentID identifies comment-family records.
	CommentID string `json:"comment_id,omitempty"`

	// Author is the display name of the comment author.
	Author string `json:"author,omitempty"`

	// Channel is the publishing channel for video records.
	Channel string `json:"channel,omitempty"`

	// LikeCount is never negative; untrusted upstream values are clamped.
	LikeCount int `json:"like_count,omitempty"`

	// ReplyCount is never negative; untrusted upstream values are clamped.
	ReplyCount int `json:"reply_count,omitempty"`

	// PublishedAt is an ISO-8601 timestamp from the provider, or empty.
	PublishedAt string `json:"published_at,omitempty"`

	// Domain is derived from URL at enrichment time.
	Domain string `json:"domain,omitempty"`

	// FetchedAt is an ISO-8601 timestamp of retrieval.
	FetchedAt string `json:"fetched_at,omitempty"`

	// TextHash is the content fingerprint of Text. Empty when Text is empty.
	TextHash string `json:"text_hash,omitempty"`

	// EstimatedTokens is a rough token count for Text (len/4).
	EstimatedTokens int `json:"estimated_tokens,omitempty"`
}

// Validate checks the structural invariants of a Record.
// Comment-family records must carry both video and comment identifiers,
// and TextHash must be empty exactly when Text is empty.
func (r *Record) Validate() error {
	if !r.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, r.SourceType)
	}
	if r.SourceType.CommentFamily() {
		if r.VideoID == "" {
			return fmt.Errorf("%w: %s record missing video_id", ErrInvalidInput, r.SourceType)
		}
		if r.CommentID == "" {
			return fmt.Errorf("%w: %s record missing comment_id", ErrInvalidInput, r.SourceType)
		}
	}
	if r.Text == "" && r.TextHash != "" {
		return fmt.Errorf("%w: text_hash set on empty text", ErrInvalidInput)
	}
	if r.TextHash != "" && r.TextHash != TextHash(r.Text) {
		return fmt.Errorf("%w: text_hash does not match text", ErrInvalidInput)
	}
	if r.LikeCount < 0 || r.ReplyCount < 0 {
		return fmt.Errorf("%w: negative engagement count", ErrInvalidInput)
	}
	return nil
}

// Enrich stamps the derived fields: Domain from URL, TextHash and
// EstimatedTokens from Text. Empty text clears the hash and token count.
func (r *Record) Enrich() {
	r.Domain = DomainOf(r.URL)
	if r.Text == "" {
		r.TextHash = ""
		r.EstimatedTokens = 0
		return
	}
	r.TextHash = TextHash(r.Text)
	r.EstimatedTokens = EstimateTokens(r.Text)
}

// ClampCount coerces an untrusted upstream count to a non-negative value.
func ClampCount(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}

// WatchURL returns the canonical watch page URL for a video id.
// Comment citations are normalised to this URL so they stay resolvable.
func WatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// EstimateTokens approximates the token count of text at 4 characters
// per token. Non-empty text always counts as at least one token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n < 1 {
		n = 1
	}
	return n
}
