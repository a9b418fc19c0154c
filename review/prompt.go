package review

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are a senior software engineer reviewing a change in an existing codebase.

You have read-only tools: inspect the working-tree diff, read files, list directories, and search for patterns. Start from the diff, then read enough of the surrounding code to judge the change in context.

When you have seen enough, stop calling tools and respond with your final answer: a single JSON object inside a fenced code block, matching this schema exactly:

%s

Anchor each comment to a path and line from the diff. Reserve the critical severity for defects that must block the change. Do not include any prose outside the fenced JSON block in your final answer.`

// SystemPrompt returns the review system prompt with the output schema
// embedded.
func SystemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, SchemaJSON())
}

// Inputs are the task-specific inputs a review run starts from. Branch is
// optional; NewRunConfig fills it from the repository when left empty.
type Inputs struct {
	ProjectRoot string
	TaskTitle   string
	TaskBody    string
	Branch      string
}

// BuildPrompt renders the initial user message for a review run.
func (in Inputs) BuildPrompt() string {
	var sb strings.Builder
	sb.WriteString("Review the current working-tree changes")
	if in.Branch != "" {
		fmt.Fprintf(&sb, " on branch %q", in.Branch)
	}
	if in.TaskTitle != "" {
		fmt.Fprintf(&sb, " made for the task %q", in.TaskTitle)
	}
	sb.WriteString(".\n\n")
	if in.TaskBody != "" {
		fmt.Fprintf(&sb, "Task context:\n%s\n\n", in.TaskBody)
	}
	sb.WriteString("Start by inspecting the diff, then emit the review.")
	return sb.String()
}
