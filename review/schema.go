// Package review is the code-review call site: it configures an agent run
// that inspects a git diff and produces inline comments and task feedback.
package review

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Review is the structured result of a review run.
type Review struct {
	Summary  string    `json:"summary"`
	Comments []Comment `json:"comments" validate:"dive"`
	Feedback string    `json:"feedback"`
}

// Comment is one inline remark anchored to a file and line in the diff.
type Comment struct {
	Path     string `json:"path" validate:"required"`
	Line     int    `json:"line" validate:"gte=0"`
	Severity string `json:"severity" validate:"omitempty,oneof=info minor major critical"`
	Body     string `json:"body" validate:"required"`
}

// FromRawText wraps an unstructured model response as a degraded review:
// the raw text lands in Feedback and the structured fields stay empty. Used
// by the fallback-raw-text extraction policy.
func FromRawText(text string) Review {
	return Review{Feedback: text}
}

// SchemaJSON returns the review's JSON schema for embedding in the system
// prompt.
func SchemaJSON() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Review{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
