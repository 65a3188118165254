package runtime_test

import (
	"strings"
	"testing"

	"github.com/aretw0/rulegen/internal/runtime"
	"github.com/aretw0/rulegen/pkg/adapters/memory"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(rules ...domain.Rule) *memory.Store {
	store := memory.NewStore()
	store.Load(domain.RulePack{ID: "test", Rules: rules})
	return store
}

func expand(t *testing.T, e *runtime.Engine, req runtime.Request) (string, int) {
	t.Helper()
	if req.MaxDepth == 0 {
		req.MaxDepth = domain.DefaultMaxDepth
	}
	text, depth, err := e.Expand(req)
	require.NoError(t, err)
	return text, depth
}

func TestEngine_Composition(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "greeting", Text: "Hello, {name}!"},
		domain.Rule{Symbol: "name", Text: "World"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "greeting"})
	assert.Equal(t, "Hello, World!", text)
	assert.Equal(t, 2, depth)
}

func TestEngine_VariablesShadowRules(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "greeting", Text: "Hello, {name}!"},
		domain.Rule{Symbol: "name", Text: "World"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "greeting", Variables: map[string]string{"name": "Alice"}})
	assert.Equal(t, "Hello, Alice!", text)
	assert.Equal(t, 1, depth)
}

func TestEngine_VariableValuesAreTerminal(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "greeting", Text: "Hello, {name}!"},
		domain.Rule{Symbol: "other", Text: "never"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, _ := expand(t, e, runtime.Request{Root: "greeting", Variables: map[string]string{"name": "{other}"}})
	assert.Equal(t, "Hello, {other}!", text)
}

func TestEngine_RootVariable(t *testing.T) {
	e := runtime.NewEngine(newStore(), random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "name", Variables: map[string]string{"name": "Bob"}})
	assert.Equal(t, "Bob", text)
	assert.Equal(t, 0, depth)
}

func TestEngine_Undefined(t *testing.T) {
	store := newStore(domain.Rule{Symbol: "greeting", Text: "Hello, {unknown}!"})
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, _ := expand(t, e, runtime.Request{Root: "greeting"})
	assert.Equal(t, "Hello, [UNDEFINED:unknown]!", text)

	text, _ = expand(t, e, runtime.Request{Root: "greeting", AllowUndefined: true})
	assert.Equal(t, "Hello, unknown!", text)

	text, _ = expand(t, e, runtime.Request{Root: "missing"})
	assert.Equal(t, "[UNDEFINED:missing]", text)
}

func TestEngine_SelfReferenceTerminates(t *testing.T) {
	store := newStore(domain.Rule{Symbol: "recursive", Text: "{recursive}"})
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "recursive", MaxDepth: 3})
	assert.Equal(t, "[MAX_DEPTH:recursive]", text)
	assert.Equal(t, 3, depth)
}

func TestEngine_DepthGuardRunsBeforeLookup(t *testing.T) {
	store := newStore(domain.Rule{Symbol: "a", Text: "{b}"})
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	// With a zero limit even a variable root is reported as the marker.
	text, depth, err := e.Expand(runtime.Request{Root: "a", Variables: map[string]string{"a": "x"}, MaxDepth: 0})
	require.NoError(t, err)
	assert.Equal(t, "[MAX_DEPTH:a]", text)
	assert.Equal(t, 0, depth)

	text, _, err = e.Expand(runtime.Request{Root: "a", MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, "[MAX_DEPTH:b]", text)
}

func TestEngine_SiblingsShareDepth(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "list", Text: "{item}, {item}, {item}"},
		domain.Rule{Symbol: "item", Text: "x"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "list", MaxDepth: 2})
	assert.Equal(t, "x, x, x", text)
	assert.Equal(t, 2, depth)
}

func TestEngine_MutualRecursion(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "ping", Text: "ping {pong}"},
		domain.Rule{Symbol: "pong", Text: "pong {ping}"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, _ := expand(t, e, runtime.Request{Root: "ping", MaxDepth: 4})
	assert.Equal(t, "ping pong ping pong [MAX_DEPTH:ping]", text)
}

func TestEngine_PlaceholderScanning(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "x", Text: "X"},
		domain.Rule{Symbol: "empty", Text: "a {} b"},
		domain.Rule{Symbol: "unclosed", Text: "a {x b"},
		domain.Rule{Symbol: "nested", Text: "{a{x}}"},
		domain.Rule{Symbol: "adjacent", Text: "{x}{x}"},
		domain.Rule{Symbol: "stray", Text: "} {x} {"},
	)
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	tests := []struct {
		root string
		want string
	}{
		{"empty", "a {} b"},
		{"unclosed", "a {x b"},
		{"nested", "[UNDEFINED:a{x]}"},
		{"adjacent", "XX"},
		{"stray", "} X {"},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			text, _ := expand(t, e, runtime.Request{Root: tt.root})
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestEngine_SeededSelection(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "greeting", Text: "Hello, {name}!"},
		domain.Rule{Symbol: "greeting", Text: "Hi there, {name}!"},
		domain.Rule{Symbol: "greeting", Text: "Greetings, {name}!"},
		domain.Rule{Symbol: "name", Text: "World"},
		domain.Rule{Symbol: "name", Text: "Friend"},
		domain.Rule{Symbol: "name", Text: "Traveler"},
	)
	rng := random.NewSeeded(random.IntSeed(42))
	e := runtime.NewEngine(store, rng)

	var got []string
	for i := 0; i < 3; i++ {
		text, _ := expand(t, e, runtime.Request{Root: "greeting"})
		got = append(got, text)
	}
	assert.Equal(t, []string{"Hello, Friend!", "Greetings, World!", "Hi there, World!"}, got)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "root", Text: "{known} {unknown} {deep}"},
		domain.Rule{Symbol: "known", Text: "k"},
		domain.Rule{Symbol: "deep", Text: "{deep}"},
	)

	var expanded, undefined, exceeded []string
	hooks := domain.LifecycleHooks{
		OnSymbolExpand: func(e *domain.SymbolEvent) {
			expanded = append(expanded, e.Symbol)
			require.NotNil(t, e.Rule)
		},
		OnUndefinedSymbol: func(e *domain.SymbolEvent) { undefined = append(undefined, e.Symbol) },
		OnDepthExceeded:   func(e *domain.SymbolEvent) { exceeded = append(exceeded, e.Symbol) },
	}
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)), runtime.WithLifecycleHooks(hooks))

	text, _ := expand(t, e, runtime.Request{Root: "root", MaxDepth: 3})
	assert.Equal(t, "k [UNDEFINED:unknown] [MAX_DEPTH:deep]", text)
	assert.Equal(t, []string{"root", "known", "deep", "deep"}, expanded)
	assert.Equal(t, []string{"unknown"}, undefined)
	assert.Equal(t, []string{"deep"}, exceeded)
}

// fixedSource always returns the same value, pinning weighted selection.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }
func (f fixedSource) Seed(random.Seed) {}

func TestEngine_WeightedSelectionWithStub(t *testing.T) {
	store := newStore(
		domain.Rule{Symbol: "color", Text: "red", Weight: 3},
		domain.Rule{Symbol: "color", Text: "blue"},
	)

	text, _ := expand(t, runtime.NewEngine(store, fixedSource(0.70)), runtime.Request{Root: "color"})
	assert.Equal(t, "red", text)

	text, _ = expand(t, runtime.NewEngine(store, fixedSource(0.80)), runtime.Request{Root: "color"})
	assert.Equal(t, "blue", text)
}

func TestEngine_DeepChainIsBoundedByMaxDepth(t *testing.T) {
	store := newStore(domain.Rule{Symbol: "s", Text: "a{s}"})
	e := runtime.NewEngine(store, random.NewSeeded(random.IntSeed(1)))

	text, depth := expand(t, e, runtime.Request{Root: "s", MaxDepth: 500})
	assert.Equal(t, strings.Repeat("a", 500)+"[MAX_DEPTH:s]", text)
	assert.Equal(t, 500, depth)
}
