package random

import (
	"strconv"
	"strings"
)

// Seed is either a string or an integer seed value.
type Seed struct {
	text    string
	number  int64
	literal bool
}

// StringSeed creates a seed from text. The text is hashed into the initial state.
func StringSeed(s string) Seed {
	return Seed{text: s, literal: true}
}

// IntSeed creates a numeric seed.
func IntSeed(n int64) Seed {
	return Seed{number: n}
}

// ParseSeed interprets s as an integer seed when it is a base-10 integer and as a
// string seed otherwise. Used by the command line and wire surfaces.
func ParseSeed(s string) Seed {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return IntSeed(n)
	}
	return StringSeed(s)
}

// IsString reports whether the seed was built from text.
func (s Seed) IsString() bool { return s.literal }

// String renders the seed the way it was given.
func (s Seed) String() string {
	if s.literal {
		return s.text
	}
	return strconv.FormatInt(s.number, 10)
}
