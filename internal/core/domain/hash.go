package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// hashPrefix namespaces fingerprints so the algorithm can be evolved
// without ambiguity in stored data.
const hashPrefix = "sha256:"

// TextHash computes the content fingerprint used for deduplication
// across runs. Returns the empty string for empty text.
func TextHash(text string) string {
	if text == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(text))
	return hashPrefix + hex.EncodeToString(sum[:])
}

// ShortHash returns a compact hex fingerprint of text, for derived
// identifiers where the full hash would be unwieldy.
func ShortHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:6])
}

// DomainOf extracts the host portion of a URL.
// Returns the empty string when rawURL is absent or unparseable.
func DomainOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	// Scheme-less inputs like "example.com/page" parse with an empty host.
	if host == "" && !strings.Contains(rawURL, "://") {
		if u2, err2 := url.Parse("https://" + rawURL); err2 == nil {
			host = u2.Hostname()
		}
	}
	return host
}
