package dsl

import (
	"testing"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/rulepack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Pack(t *testing.T) {
	pack := New("greeting").
		Name("Greetings").
		Description("Simple salutations").
		Rule("greeting", "{salutation}, {name}!").
		Rules("salutation", "Hello", "Hi there").
		Rule("salutation", "Greetings").Weight(0.5).Tags("formal", "polite").
		Var("name", "World").
		Build()

	assert.Equal(t, domain.RulePack{
		ID:          "greeting",
		Name:        "Greetings",
		Description: "Simple salutations",
		Rules: []domain.Rule{
			{Symbol: "greeting", Text: "{salutation}, {name}!"},
			{Symbol: "salutation", Text: "Hello"},
			{Symbol: "salutation", Text: "Hi there"},
			{Symbol: "salutation", Text: "Greetings", Weight: 0.5, Tags: []string{"formal", "polite"}},
		},
		Variables: map[string]string{"name": "World"},
	}, pack)

	require.NoError(t, rulepack.Validate(pack))
}

func TestBuilder_WeightBeforeRuleIsIgnored(t *testing.T) {
	pack := New("empty").Weight(3).Tags("x").Build()

	assert.NotNil(t, pack.Rules)
	assert.Empty(t, pack.Rules)
}

func TestBuilder_Vars(t *testing.T) {
	pack := New("vars").
		Var("a", "1").
		Vars(map[string]string{"a": "2", "b": "3"}).
		Build()

	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, pack.Variables)
}

func TestBuilder_BuildIsIndependent(t *testing.T) {
	b := New("copy").Rule("s", "one").Tags("t").Var("k", "v")

	first := b.Build()
	first.Rules[0].Text = "mutated"
	first.Rules[0].Tags[0] = "mutated"
	first.Variables["k"] = "mutated"

	b.Rule("s", "two")
	second := b.Build()

	assert.Len(t, first.Rules, 1)
	require.Len(t, second.Rules, 2)
	assert.Equal(t, "one", second.Rules[0].Text)
	assert.Equal(t, []string{"t"}, second.Rules[0].Tags)
	assert.Equal(t, "v", second.Variables["k"])
}
