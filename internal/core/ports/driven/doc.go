// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): source connectors, persistence sinks,
// the semantic index, and the generation collaborator.
package driven
