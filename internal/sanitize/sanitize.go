// Package sanitize cleans caller-supplied variable values before they are
// interpolated into generated text.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/rulegen/pkg/domain"
)

// DefaultMaxInputSize is 4KB (conservative default).
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Input enforces the size limit, validates UTF-8 and strips control characters
// other than newline, tab and carriage return. A limit <= 0 uses DefaultMaxInputSize.
func Input(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		// Rejected rather than truncated so the output stays deterministic.
		return "", fmt.Errorf("%w: %w: size=%d limit=%d", domain.ErrInvalidArgument, ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArgument, ErrInvalidUTF8)
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Variables sanitizes every key and value. The input map is not modified.
// Two names that sanitize to the same key are rejected.
func Variables(vars map[string]string, limit int) (map[string]string, error) {
	if vars == nil {
		return nil, nil
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		key, err := Input(k, limit)
		if err != nil {
			return nil, fmt.Errorf("variable name: %w", err)
		}
		value, err := Input(v, limit)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", key, err)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: variable names collide after sanitizing: %q", domain.ErrInvalidArgument, key)
		}
		out[key] = value
	}
	return out, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
