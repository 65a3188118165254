package runtime

import (
	"io"
	"log/slog"
	"regexp"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/ports"
	"github.com/aretw0/rulegen/pkg/random"
)

// placeholder matches {identifier}: a non-empty run of characters up to the next '}'.
// There is no nesting and no escaping; "{}" and an unclosed "{" stay literal.
var placeholder = regexp.MustCompile(`\{([^}]+)\}`)

// Engine expands symbols into text using a rule store and a random source.
// It holds no per-call state; the random source is the only thing it mutates.
type Engine struct {
	rules  ports.RuleReader
	rng    random.Source
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine reading rules from rules and drawing from rng.
func NewEngine(rules ports.RuleReader, rng random.Source, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:  rules,
		rng:    rng,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request holds the per-call expansion parameters.
type Request struct {
	Root           string
	Variables      map[string]string
	MaxDepth       int
	AllowUndefined bool
}

// expansion carries the state of one Expand call through the recursion.
type expansion struct {
	*Engine
	req     Request
	deepest int
	err     error
}

// Expand resolves req.Root and returns the untrimmed text and the deepest
// rule-expansion level reached.
func (e *Engine) Expand(req Request) (string, int, error) {
	x := &expansion{Engine: e, req: req}
	text := x.resolve(req.Root, 0)
	if x.err != nil {
		return "", 0, x.err
	}
	return text, x.deepest, nil
}

// resolve turns a single symbol into text.
// Order matters: the depth guard runs before any lookup, and variables shadow rules.
func (x *expansion) resolve(symbol string, depth int) string {
	if depth >= x.req.MaxDepth {
		x.logger.Debug("Depth limit reached", "symbol", symbol, "depth", depth)
		if x.hooks.OnDepthExceeded != nil {
			x.hooks.OnDepthExceeded(&domain.SymbolEvent{Type: domain.EventDepthExceeded, Symbol: symbol, Depth: depth})
		}
		return domain.MaxDepthMarker(symbol)
	}

	if value, ok := x.req.Variables[symbol]; ok {
		return value
	}

	rules := x.rules.Rules(symbol)
	if len(rules) == 0 {
		x.logger.Debug("Undefined symbol", "symbol", symbol, "allow_undefined", x.req.AllowUndefined)
		if x.hooks.OnUndefinedSymbol != nil {
			x.hooks.OnUndefinedSymbol(&domain.SymbolEvent{Type: domain.EventUndefined, Symbol: symbol, Depth: depth})
		}
		if x.req.AllowUndefined {
			return symbol
		}
		return domain.UndefinedMarker(symbol)
	}

	weights := make([]float64, len(rules))
	for i, r := range rules {
		weights[i] = r.EffectiveWeight()
	}

	rule, err := random.Choose(x.rng, rules, weights)
	if err != nil {
		x.fail(err)
		return ""
	}

	next := depth + 1
	if next > x.deepest {
		x.deepest = next
	}
	if x.hooks.OnSymbolExpand != nil {
		x.hooks.OnSymbolExpand(&domain.SymbolEvent{Type: domain.EventSymbolExpand, Symbol: symbol, Depth: next, Rule: &rule})
	}

	return x.processText(rule.Text, next)
}

// processText substitutes every placeholder in template, left to right.
// Placeholders in one template are siblings: they all resolve at the same depth.
func (x *expansion) processText(template string, depth int) string {
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		if x.err != nil {
			return ""
		}
		return x.resolve(match[1:len(match)-1], depth)
	})
}

func (x *expansion) fail(err error) {
	if x.err == nil {
		x.err = err
	}
}
