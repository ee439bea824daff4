package web

import (
	"net/http"
	"time"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.WebConnector = (*Connector)(nil)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a desktop browser user agent. The search
	// endpoints serve a reduced page to unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config holds the web connector configuration.
type Config struct {
	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// UserAgent overrides the request user agent.
	UserAgent string

	// searchBaseURL and fallbackBaseURL override the provider
	// endpoints. Used by tests.
	searchBaseURL   string
	fallbackBaseURL string
}

// Connector implements driven.WebConnector over plain HTTP.
type Connector struct {
	client          *http.Client
	userAgent       string
	searchBaseURL   string
	fallbackBaseURL string
}

// New creates a web connector from the given configuration.
func New(cfg Config) *Connector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.searchBaseURL == "" {
		cfg.searchBaseURL = "https://duckduckgo.com/html/"
	}
	if cfg.fallbackBaseURL == "" {
		cfg.fallbackBaseURL = "https://www.bing.com/search"
	}
	return &Connector{
		client:          &http.Client{Timeout: cfg.Timeout},
		userAgent:       cfg.UserAgent,
		searchBaseURL:   cfg.searchBaseURL,
		fallbackBaseURL: cfg.fallbackBaseURL,
	}
}
