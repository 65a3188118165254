package domain

// Result is the outcome of a generation call.
type Result struct {
	// Text is the expanded output, trimmed of surrounding whitespace.
	Text string `json:"text"`
	// Variables is the merged set of variables that was in effect.
	Variables map[string]string `json:"variables"`
	// Depth is the deepest rule-expansion level reached.
	Depth int `json:"depth"`
}
