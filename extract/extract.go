// Package extract locates the structured JSON result embedded in a model's
// free-form final response and validates it against the call site's schema.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Policy names what happens when no parseable JSON can be found in the
// model's final response.
type Policy string

const (
	// FailClosed reports extraction failure as a run failure.
	FailClosed Policy = "fail"
	// FallbackRawText degrades to a minimal result carrying the raw response
	// text as free-form content.
	FallbackRawText Policy = "fallback-raw-text"
)

// ErrNoJSON is returned when none of the extraction strategies yields
// parseable JSON.
var ErrNoJSON = errors.New("no parseable JSON found in model output")

// SchemaError reports that parseable JSON was found but did not satisfy the
// destination schema. It is distinct from extraction failure: the fallback
// policy never applies to it.
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n(.*?)\\n\\s*```")

var validate = validator.New(validator.WithRequiredStructEnabled())

// JSON locates the first parseable JSON object in text. Strategies are tried
// in order, first match wins: each fenced code block (with or without a
// language tag), the entire trimmed text, and the substring between the first
// '{' and the last '}'.
func JSON(text string) (json.RawMessage, bool) {
	for _, candidate := range candidates(text) {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		var probe json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &probe); err == nil {
			return json.RawMessage(trimmed), true
		}
	}
	return nil, false
}

func candidates(text string) []string {
	var out []string
	// A response may carry several fences; only one of them holds the result.
	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	out = append(out, text)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			out = append(out, text[start:end+1])
		}
	}
	return out
}

// Into extracts JSON from text, unmarshals it into dest, and validates dest's
// struct tags. It returns ErrNoJSON when nothing parseable was found and a
// *SchemaError when the parsed value violates the schema.
func Into(text string, dest any) error {
	raw, ok := JSON(text)
	if !ok {
		return ErrNoJSON
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &SchemaError{Cause: err}
	}
	return Validate(dest)
}

// Validate checks dest against its validator struct tags. Non-struct values
// pass unconditionally.
func Validate(dest any) error {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return &SchemaError{Cause: errors.New("nil destination")}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(v.Interface()); err != nil {
		return &SchemaError{Cause: err}
	}
	return nil
}
