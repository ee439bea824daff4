package domain

import "unicode/utf8"

// Snippet is an ephemeral, truncated view of a Record prepared for one
// generation call. Snippets are never persisted; the selector rebuilds
// them from the corpus on every call.
type Snippet struct {
	// Source is the citation locator: a URL, or a logical tag such as
	// "about_guest" for derived records.
	Source string `json:"source"`

	// Title labels the snippet for the generator.
	Title string `json:"title"`

	// Text is hard-truncated to the selecting category's budget.
	Text string `json:"text"`
}

// Truncate returns s cut to at most limit bytes, backing off so a
// multi-byte rune is never split. Non-positive limits leave s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
