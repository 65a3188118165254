package domain

// Rule is one alternative expansion for a symbol.
// Text is a template that may contain {identifier} placeholders.
type Rule struct {
	Symbol string   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	Text   string   `json:"text" yaml:"text" mapstructure:"text"`
	Weight float64  `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`
}

// EffectiveWeight returns the weight used for selection. Unset weights count as 1.
func (r Rule) EffectiveWeight() float64 {
	if r.Weight == 0 {
		return DefaultWeight
	}
	return r.Weight
}

// HasAnyTag reports whether the rule carries at least one of the given tags.
func (r Rule) HasAnyTag(tags ...string) bool {
	for _, have := range r.Tags {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// RulePack is a named bundle of rules and default variables.
// Identity is ID, but uniqueness across loaded packs is not enforced.
type RulePack struct {
	ID          string            `json:"id" yaml:"id" mapstructure:"id"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Rules       []Rule            `json:"rules" yaml:"rules" mapstructure:"rules"`
	Variables   map[string]string `json:"variables,omitempty" yaml:"variables,omitempty" mapstructure:"variables"`
}

// Clone returns a deep copy of the pack.
func (p RulePack) Clone() RulePack {
	out := p
	out.Rules = make([]Rule, len(p.Rules))
	for i, r := range p.Rules {
		if r.Tags != nil {
			r.Tags = append([]string(nil), r.Tags...)
		}
		out.Rules[i] = r
	}
	if p.Variables != nil {
		out.Variables = make(map[string]string, len(p.Variables))
		for k, v := range p.Variables {
			out.Variables[k] = v
		}
	}
	return out
}

// DisplayName returns the pack name, falling back to its ID.
func (p RulePack) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
