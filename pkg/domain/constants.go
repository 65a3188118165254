package domain

import "fmt"

// DefaultMaxDepth bounds recursion when a generation call does not set its own limit.
const DefaultMaxDepth = 10

// MaxCount bounds the number of results a single request may ask for.
const MaxCount = 100

// DefaultWeight is used for rules that declare no weight.
const DefaultWeight = 1.0

// Inline markers emitted in place of a symbol that could not be expanded.
const (
	MarkerMaxDepth  = "MAX_DEPTH"
	MarkerUndefined = "UNDEFINED"
)

// MaxDepthMarker returns the text substituted for a symbol reached at the depth limit.
func MaxDepthMarker(symbol string) string {
	return fmt.Sprintf("[%s:%s]", MarkerMaxDepth, symbol)
}

// UndefinedMarker returns the text substituted for a symbol with no rules.
func UndefinedMarker(symbol string) string {
	return fmt.Sprintf("[%s:%s]", MarkerUndefined, symbol)
}
