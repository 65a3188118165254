package domain

import "errors"

// ErrInvalidArgument is returned when a caller supplies an argument the operation cannot
// work with, such as an empty candidate set or a negative depth limit.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedRulePack is returned when a rule pack record is structurally invalid
// (missing id, non-sequence rules, negative weights, rules without a symbol).
var ErrMalformedRulePack = errors.New("invalid rule pack format")
