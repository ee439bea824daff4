// Package web implements the web search and fetch connector.
//
// Search resolves free-text queries against DuckDuckGo's HTML endpoint
// with a Bing fallback when the primary returns nothing. Fetch
// retrieves a page, strips navigation and boilerplate regions from the
// DOM, and extracts whitespace-normalised body text. Any fetch or
// parse failure degrades to a link-only record; the connector never
// aborts a batch for one bad URL.
package web
