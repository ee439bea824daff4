package youtube

import "time"

const (
	// DefaultTimeout is the per-call HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the comment page size requested from the API.
	// The provider caps pages at 100 items.
	DefaultPageSize = 100

	// DefaultQPS is the proactive throttle on API calls. The quota
	// unit cost of search calls is high; there is no reason to burst.
	DefaultQPS = 2.0
)

// Config holds the YouTube connector configuration. Credentials are
// passed explicitly; the connector never reads the environment.
type Config struct {
	// APIKey enables API access including comment reads.
	APIKey string

	// AccessToken optionally authenticates via OAuth instead of an
	// API key. Either credential enables the connector.
	AccessToken string

	// PageSize overrides the comment page size (default: 100).
	PageSize int64

	// Timeout is the per-call timeout (default: 30s).
	Timeout time.Duration

	// QPS overrides the proactive request throttle (default: 2.0).
	QPS float64

	// TranscriptBaseURL overrides the caption endpoint. Used by tests.
	TranscriptBaseURL string
}

// enabled reports whether any credential is configured.
func (c Config) enabled() bool {
	return c.APIKey != "" || c.AccessToken != ""
}
