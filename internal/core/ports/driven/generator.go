package driven

import (
	"context"
	"encoding/json"
)

// Generator is the generation collaborator: it turns a bounded snippet
// context plus an instruction payload into a structured result. The
// prompt content and output schema are opaque to the core.
type Generator interface {
	// GenerateJSON runs one system+user exchange and returns the raw
	// JSON object the model produced.
	GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error)

	// ModelName returns the model identifier in use.
	ModelName() string
}
