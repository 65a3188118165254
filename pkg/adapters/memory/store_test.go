package memory_test

import (
	"testing"

	"github.com/aretw0/rulegen/pkg/adapters/memory"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RulesAccumulateAcrossPacks(t *testing.T) {
	store := memory.NewStore()
	store.Load(domain.RulePack{
		ID: "a",
		Rules: []domain.Rule{
			{Symbol: "color", Text: "red"},
			{Symbol: "shape", Text: "circle"},
		},
	})
	store.Load(domain.RulePack{
		ID:    "a",
		Rules: []domain.Rule{{Symbol: "color", Text: "blue", Weight: 3}},
	})

	rules := store.Rules("color")
	require.Len(t, rules, 2)
	assert.Equal(t, "red", rules[0].Text)
	assert.Equal(t, "blue", rules[1].Text)
	assert.Equal(t, []string{"color", "shape"}, store.Symbols())
}

func TestStore_VariablesLastWriteWins(t *testing.T) {
	store := memory.NewStore()
	store.Load(domain.RulePack{ID: "a", Variables: map[string]string{"name": "Alice", "place": "Home"}})
	store.Load(domain.RulePack{ID: "b", Variables: map[string]string{"name": "Bob"}})

	assert.Equal(t, map[string]string{"name": "Bob", "place": "Home"}, store.Variables())

	store.SetVariable("place", "Away")
	assert.Equal(t, "Away", store.Variables()["place"])
}

func TestStore_UndefinedSymbolIsEmpty(t *testing.T) {
	store := memory.NewStore()

	rules := store.Rules("missing")
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
	assert.Empty(t, store.Symbols())
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := memory.NewStore()
	store.Load(domain.RulePack{
		ID:        "a",
		Rules:     []domain.Rule{{Symbol: "s", Text: "one"}},
		Variables: map[string]string{"k": "v"},
	})

	rules := store.Rules("s")
	rules[0].Text = "mutated"
	vars := store.Variables()
	vars["k"] = "mutated"
	syms := store.Symbols()
	syms[0] = "mutated"

	assert.Equal(t, "one", store.Rules("s")[0].Text)
	assert.Equal(t, "v", store.Variables()["k"])
	assert.Equal(t, []string{"s"}, store.Symbols())
}

func TestStore_Clear(t *testing.T) {
	store := memory.NewStore()
	store.Load(domain.RulePack{
		ID:        "a",
		Rules:     []domain.Rule{{Symbol: "s", Text: "one"}},
		Variables: map[string]string{"k": "v"},
	})

	store.Clear()

	assert.Empty(t, store.Symbols())
	assert.Empty(t, store.Rules("s"))
	assert.Empty(t, store.Variables())

	store.Load(domain.RulePack{ID: "b", Rules: []domain.Rule{{Symbol: "t", Text: "two"}}})
	assert.Equal(t, []string{"t"}, store.Symbols())
}
