package runloop

// nudgeThreshold is the remaining-turn count at or below which the wind-down
// directive is injected.
const nudgeThreshold = 2

const nudgeText = "You are almost out of turns. Stop calling tools now and respond with your final answer as a single JSON object matching the required schema."

// ShouldNudge reports whether the wind-down directive should be appended to
// the next user message. Turn counting itself lives in the run loop; this
// governor holds no state.
func ShouldNudge(turnsRemaining int) bool {
	return turnsRemaining <= nudgeThreshold
}

// NudgeText returns the wind-down directive appended to the tool-results
// message when ShouldNudge is true.
func NudgeText() string {
	return nudgeText
}
