package plan

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are a senior software engineer producing an implementation plan for a task in an existing codebase.

You have read-only tools to explore the repository: read files, list directories, and search for patterns. Use them to understand the project structure, conventions, and the code the task touches before you plan anything. Do not guess at file contents you could read.

When you have gathered enough context, stop calling tools and respond with your final answer: a single JSON object inside a fenced code block, matching this schema exactly:

%s

Break the work into ordered phases, each with concrete tasks referencing real files and symbols from the repository. Do not include any prose outside the fenced JSON block in your final answer.`

// SystemPrompt returns the planning system prompt with the output schema
// embedded.
func SystemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, SchemaJSON())
}

// Inputs are the task-specific inputs a planning run starts from.
type Inputs struct {
	ProjectRoot string
	TaskTitle   string
	TaskBody    string
}

// BuildPrompt renders the initial user message for a planning run.
func (in Inputs) BuildPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Produce an implementation plan for the following task.\n\n")
	fmt.Fprintf(&sb, "# Task: %s\n\n", in.TaskTitle)
	if in.TaskBody != "" {
		fmt.Fprintf(&sb, "%s\n\n", in.TaskBody)
	}
	sb.WriteString("Explore the repository first, then emit the plan.")
	return sb.String()
}
