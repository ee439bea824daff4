// Package youtube implements the video-platform connector on the
// YouTube Data API v3. It resolves queries to video metadata, fetches
// transcripts from the caption endpoint, and paginates comment threads
// up to a caller-specified cap, distinguishing permanent per-video
// conditions (comments disabled, quota exhausted, invalid key) from
// transient failures. Both halt pagination for the affected video and
// return whatever was already collected.
package youtube
