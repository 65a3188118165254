package dsl

import "github.com/aretw0/rulegen/pkg/domain"

// Builder manages the rule pack construction.
type Builder struct {
	pack domain.RulePack
}

// New creates a new pack builder with the given pack id.
func New(id string) *Builder {
	return &Builder{
		pack: domain.RulePack{
			ID:    id,
			Rules: []domain.Rule{},
		},
	}
}

// Name sets the human-readable pack name.
func (b *Builder) Name(name string) *Builder {
	b.pack.Name = name
	return b
}

// Description sets the pack description.
func (b *Builder) Description(description string) *Builder {
	b.pack.Description = description
	return b
}

// Rule appends a rule for symbol.
func (b *Builder) Rule(symbol, text string) *Builder {
	b.pack.Rules = append(b.pack.Rules, domain.Rule{Symbol: symbol, Text: text})
	return b
}

// Rules appends one rule per text, all for the same symbol and with the default weight.
func (b *Builder) Rules(symbol string, texts ...string) *Builder {
	for _, text := range texts {
		b.Rule(symbol, text)
	}
	return b
}

// Weight sets the weight of the last added rule.
// It has no effect before the first rule.
func (b *Builder) Weight(weight float64) *Builder {
	if r := b.last(); r != nil {
		r.Weight = weight
	}
	return b
}

// Tags adds tags to the last added rule.
// It has no effect before the first rule.
func (b *Builder) Tags(tags ...string) *Builder {
	if r := b.last(); r != nil {
		r.Tags = append(r.Tags, tags...)
	}
	return b
}

// Var sets a default variable of the pack.
func (b *Builder) Var(name, value string) *Builder {
	if b.pack.Variables == nil {
		b.pack.Variables = make(map[string]string)
	}
	b.pack.Variables[name] = value
	return b
}

// Vars sets several default variables at once.
func (b *Builder) Vars(vars map[string]string) *Builder {
	for k, v := range vars {
		b.Var(k, v)
	}
	return b
}

// Build returns the pack. The result is a copy, so the builder can keep being used
// without affecting packs it already produced.
func (b *Builder) Build() domain.RulePack {
	return b.pack.Clone()
}

func (b *Builder) last() *domain.Rule {
	if len(b.pack.Rules) == 0 {
		return nil
	}
	return &b.pack.Rules[len(b.pack.Rules)-1]
}
