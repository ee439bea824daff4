// Package domain contains the core types of the research pipeline:
// Records gathered by connectors, Chunks derived from them, and the
// Snippets assembled for generation. It has no dependencies on
// adapters or external services.
package domain
