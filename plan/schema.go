// Package plan is the planning call site: it configures an agent run that
// explores a repository and produces a phased implementation plan.
package plan

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Plan is the structured result of a planning run.
type Plan struct {
	Title    string  `json:"title" validate:"required"`
	Overview string  `json:"overview"`
	Phases   []Phase `json:"phases" validate:"required,min=1,dive"`
}

// Phase is one stage of a plan, in execution order.
type Phase struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks"`
}

// SchemaJSON returns the plan's JSON schema, embedded in the system prompt
// so the model knows the exact shape to emit.
func SchemaJSON() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Plan{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
