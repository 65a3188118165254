package memory

import (
	"github.com/aretw0/rulegen/pkg/domain"
)

// Store is the in-memory rule store owned by a generator.
// Rules accumulate per symbol in insertion order; variables are last-write-wins.
// It is not safe for concurrent use.
type Store struct {
	rules     map[string][]domain.Rule
	symbols   []string
	variables map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rules:     make(map[string][]domain.Rule),
		variables: make(map[string]string),
	}
}

// Load merges the pack into the store.
// Variables of the pack overwrite same-key variables already stored; rules are appended.
func (s *Store) Load(pack domain.RulePack) {
	for k, v := range pack.Variables {
		s.variables[k] = v
	}

	for _, rule := range pack.Rules {
		if rule.Tags != nil {
			rule.Tags = append([]string(nil), rule.Tags...)
		}
		if _, ok := s.rules[rule.Symbol]; !ok {
			s.symbols = append(s.symbols, rule.Symbol)
		}
		s.rules[rule.Symbol] = append(s.rules[rule.Symbol], rule)
	}
}

// Rules returns the ordered alternatives for symbol. The slice is a copy.
func (s *Store) Rules(symbol string) []domain.Rule {
	rules := s.rules[symbol]
	out := make([]domain.Rule, len(rules))
	copy(out, rules)
	return out
}

// Symbols returns every symbol with at least one rule, in first-insertion order.
func (s *Store) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Variables returns a copy of the stored default variables.
func (s *Store) Variables() map[string]string {
	out := make(map[string]string, len(s.variables))
	for k, v := range s.variables {
		out[k] = v
	}
	return out
}

// SetVariable sets a default variable.
func (s *Store) SetVariable(key, value string) {
	s.variables[key] = value
}

// Clear drops all rules and variables.
func (s *Store) Clear() {
	s.rules = make(map[string][]domain.Rule)
	s.symbols = nil
	s.variables = make(map[string]string)
}
