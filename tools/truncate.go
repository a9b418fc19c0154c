package tools

import (
	"fmt"
	"strings"
)

// DefaultOutputLimits caps result characters per tool before the result is
// returned to the model.
var DefaultOutputLimits = map[Name]int{
	ReadFile:      50000,
	ListFiles:     20000,
	PatternSearch: 20000,
	GitDiff:       40000,
}

// defaultLineLimits caps result lines per tool, applied after the character
// cap.
var defaultLineLimits = map[Name]int{
	ListFiles:     500,
	PatternSearch: 200,
}

const fallbackCharLimit = 30000

// Truncate applies the per-tool character and line caps to a tool result,
// eliding from the middle so both the head and tail survive.
func Truncate(output string, name Name, limits map[Name]int) string {
	maxChars, ok := limits[name]
	if !ok {
		maxChars, ok = DefaultOutputLimits[name]
		if !ok {
			maxChars = fallbackCharLimit
		}
	}

	result := truncateChars(output, maxChars)
	if maxLines, ok := defaultLineLimits[name]; ok {
		result = truncateLines(result, maxLines)
	}
	return result
}

func truncateChars(output string, maxChars int) string {
	if len(output) <= maxChars {
		return output
	}
	half := maxChars / 2
	removed := len(output) - maxChars
	return output[:half] +
		fmt.Sprintf("\n\n[Output truncated: %d characters removed from the middle. Re-run the tool with a narrower target to see specific parts.]\n\n", removed) +
		output[len(output)-half:]
}

func truncateLines(output string, maxLines int) string {
	lines := strings.Split(output, "\n")
	if len(lines) <= maxLines {
		return output
	}
	head := maxLines / 2
	tail := maxLines - head
	omitted := len(lines) - head - tail
	return strings.Join(lines[:head], "\n") +
		fmt.Sprintf("\n[... %d lines omitted ...]\n", omitted) +
		strings.Join(lines[len(lines)-tail:], "\n")
}
