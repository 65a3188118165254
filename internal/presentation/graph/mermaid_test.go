package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/presentation/graph"
	"github.com/aretw0/rulegen/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrammar(t *testing.T) *rulegen.Generator {
	t.Helper()
	gen, err := rulegen.New(rulegen.WithRulePacks(
		dsl.New("story").
			Rule("story", "{hero-name} meets {villain}.").
			Rule("story", "{hero-name} flees from {villain} and {villain}.").
			Rule("hero-name", "Ada").
			Rule("villain", "{title} Mordred").
			Rule("villain", "the {creature}").
			Var("title", "Sir").
			Build(),
	))
	require.NoError(t, err)
	return gen
}

func TestGenerateMermaid(t *testing.T) {
	gen := newGrammar(t)
	got := graph.GenerateMermaid(gen, gen.Variables(), nil)

	want := `graph TD
    story["story"]
    story -- "2 rules" --> hero_name
    story -- "2 rules" --> villain
    hero_name["hero-name"]
    villain["villain"]
    villain -.-> var_title
    villain --> creature
    var_title(["title"])
    creature{{"creature"}}
`
	assert.Equal(t, want, got)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	gen := newGrammar(t)
	got := graph.GenerateMermaid(gen, gen.Variables(), &graph.GraphOverlay{
		Root:     "story",
		Expanded: []string{"story", "hero-name", "villain", "villain"},
	})

	for _, want := range []string{
		`story(("story"))`,
		"class hero_name visited;",
		"class story current;",
	} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, 1, strings.Count(got, "class villain visited;"))
	assert.NotContains(t, got, "class story visited;")
}
