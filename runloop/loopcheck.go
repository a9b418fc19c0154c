package runloop

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

const loopSteerText = "The recent tool calls follow a repeating pattern. Try a different approach instead of repeating the same calls."

// callSignature computes a deterministic signature for a tool call from its
// name and an argument hash.
func callSignature(name string, input json.RawMessage) string {
	h := sha256.Sum256(input)
	return fmt.Sprintf("%s:%x", name, h[:8])
}

// isRepeating reports whether the trailing window of signatures consists of
// a repeating pattern of length 1, 2, or 3.
func isRepeating(sigs []string, window int) bool {
	if window <= 0 || len(sigs) < window {
		return false
	}
	recent := sigs[len(sigs)-window:]

	for patternLen := 1; patternLen <= 3; patternLen++ {
		if window%patternLen != 0 {
			continue
		}
		pattern := recent[:patternLen]
		match := true
		for i := patternLen; i < window && match; i += patternLen {
			for j := 0; j < patternLen; j++ {
				if recent[i+j] != pattern[j] {
					match = false
					break
				}
			}
		}
		if match {
			return true
		}
	}
	return false
}
