package rulegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/rulegen/internal/runtime"
	"github.com/aretw0/rulegen/pkg/adapters/memory"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/ports"
	"github.com/aretw0/rulegen/pkg/random"
	"github.com/aretw0/rulegen/pkg/rulepack"
)

// Generator is the high-level entry point of the library.
// It owns a rule store and a random stream shared by every Generate call.
type Generator struct {
	store           *memory.Store
	rng             random.Source
	engine          *runtime.Engine
	logger          *slog.Logger
	hooks           domain.LifecycleHooks
	initial         []domain.RulePack
	defaultMaxDepth int
	Name            string
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithRulePacks loads the packs, in order, when the generator is created.
func WithRulePacks(packs ...domain.RulePack) Option {
	return func(g *Generator) {
		g.initial = append(g.initial, packs...)
	}
}

// WithRandomSource replaces the default wall-clock seeded source.
func WithRandomSource(src random.Source) Option {
	return func(g *Generator) {
		g.rng = src
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithDefaultMaxDepth changes the depth limit used when a call sets none.
func WithDefaultMaxDepth(depth int) Option {
	return func(g *Generator) {
		g.defaultMaxDepth = depth
	}
}

// WithName labels the generator in logs.
func WithName(name string) Option {
	return func(g *Generator) {
		g.Name = name
	}
}

// New creates a Generator and loads any packs given through WithRulePacks.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		store:           memory.NewStore(),
		defaultMaxDepth: domain.DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.defaultMaxDepth < 0 {
		return nil, fmt.Errorf("%w: default max depth must be >= 0, got %d", domain.ErrInvalidArgument, g.defaultMaxDepth)
	}

	if g.rng == nil {
		g.rng = random.New()
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if g.Name != "" {
		g.logger = g.logger.With("generator", g.Name)
	}

	g.engine = runtime.NewEngine(g.store, g.rng,
		runtime.WithLogger(g.logger),
		runtime.WithLifecycleHooks(g.hooks),
	)

	if err := g.LoadRulePacks(g.initial...); err != nil {
		return nil, err
	}
	g.initial = nil

	return g, nil
}

// LoadRulePacks loads packs in order. Every pack is validated before any is loaded,
// so a malformed pack leaves the store untouched.
func (g *Generator) LoadRulePacks(packs ...domain.RulePack) error {
	for _, p := range packs {
		if err := rulepack.ValidateRules(p); err != nil {
			return err
		}
	}
	for _, p := range packs {
		g.store.Load(p)
		g.logger.Debug("Rule pack loaded", "pack_id", p.ID, "rules", len(p.Rules), "variables", len(p.Variables))
	}
	return nil
}

// LoadRulePack merges one pack: its variables override stored ones, its rules are appended.
func (g *Generator) LoadRulePack(pack domain.RulePack) error {
	return g.LoadRulePacks(pack)
}

// LoadFrom loads every pack yielded by the source.
func (g *Generator) LoadFrom(ctx context.Context, src ports.PackSource) error {
	packs, err := src.Packs(ctx)
	if err != nil {
		return fmt.Errorf("failed to read rule packs: %w", err)
	}
	return g.LoadRulePacks(packs...)
}

// Reload replaces the store contents with packs. Like LoadRulePacks, every pack is
// validated first, so a malformed pack keeps the current rules in place.
func (g *Generator) Reload(packs ...domain.RulePack) error {
	for _, p := range packs {
		if err := rulepack.ValidateRules(p); err != nil {
			return err
		}
	}
	g.store.Clear()
	return g.LoadRulePacks(packs...)
}

// Clear drops all rules and variables.
func (g *Generator) Clear() {
	g.store.Clear()
}

// SetVariable sets a default variable used by later Generate calls.
func (g *Generator) SetVariable(key, value string) {
	g.store.SetVariable(key, value)
}

// Variables returns a copy of the default variables.
func (g *Generator) Variables() map[string]string {
	return g.store.Variables()
}

// AvailableSymbols returns the symbols with at least one rule, in first-insertion order.
func (g *Generator) AvailableSymbols() []string {
	return g.store.Symbols()
}

// RulesForSymbol returns the rules registered for symbol (empty when none).
func (g *Generator) RulesForSymbol(symbol string) []domain.Rule {
	return g.store.Rules(symbol)
}

// Snapshot copies the loaded rules and default variables.
func (g *Generator) Snapshot() domain.Snapshot {
	symbols := g.store.Symbols()
	rules := make(map[string][]domain.Rule, len(symbols))
	for _, sym := range symbols {
		rules[sym] = g.store.Rules(sym)
	}
	return domain.Snapshot{
		Symbols:   symbols,
		Rules:     rules,
		Variables: g.store.Variables(),
	}
}

// GenerateOption configures a single Generate call.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	maxDepth       int
	seed           *random.Seed
	variables      map[string]string
	allowUndefined bool
}

// WithMaxDepth bounds rule expansions along any path. Must be >= 0.
func WithMaxDepth(depth int) GenerateOption {
	return func(c *generateConfig) {
		c.maxDepth = depth
	}
}

// WithSeed reseeds the generator's random stream before the call.
// Later calls without a seed continue the same stream.
func WithSeed(seed random.Seed) GenerateOption {
	return func(c *generateConfig) {
		c.seed = &seed
	}
}

// WithVariables layers per-call variables over the defaults. Per-call values win.
func WithVariables(vars map[string]string) GenerateOption {
	return func(c *generateConfig) {
		if c.variables == nil {
			c.variables = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			c.variables[k] = v
		}
	}
}

// WithAllowUndefined renders undefined symbols as their bare name instead of a marker.
func WithAllowUndefined(allow bool) GenerateOption {
	return func(c *generateConfig) {
		c.allowUndefined = allow
	}
}

// Generate expands root into text.
// The only errors are invalid options; undefined symbols and the depth limit are
// reported inline in the text.
func (g *Generator) Generate(root string, opts ...GenerateOption) (*domain.Result, error) {
	cfg, err := g.configure(opts)
	if err != nil {
		return nil, err
	}
	if cfg.seed != nil {
		g.rng.Seed(*cfg.seed)
	}
	return g.generate(root, cfg)
}

// GenerateN produces n results from one stream. A seed option is applied once,
// before the first result, so the batch as a whole is reproducible.
func (g *Generator) GenerateN(root string, n int, opts ...GenerateOption) ([]*domain.Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: count must be >= 0, got %d", domain.ErrInvalidArgument, n)
	}
	cfg, err := g.configure(opts)
	if err != nil {
		return nil, err
	}
	if cfg.seed != nil {
		g.rng.Seed(*cfg.seed)
	}

	results := make([]*domain.Result, 0, min(n, domain.MaxCount))
	for i := 0; i < n; i++ {
		res, err := g.generate(root, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) configure(opts []GenerateOption) (generateConfig, error) {
	cfg := generateConfig{maxDepth: g.defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth < 0 {
		return cfg, fmt.Errorf("%w: max depth must be >= 0, got %d", domain.ErrInvalidArgument, cfg.maxDepth)
	}
	return cfg, nil
}

func (g *Generator) generate(root string, cfg generateConfig) (*domain.Result, error) {
	start := time.Now()

	merged := g.store.Variables()
	for k, v := range cfg.variables {
		merged[k] = v
	}

	text, depth, err := g.engine.Expand(runtime.Request{
		Root:           root,
		Variables:      merged,
		MaxDepth:       cfg.maxDepth,
		AllowUndefined: cfg.allowUndefined,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %q: %w", root, err)
	}

	res := &domain.Result{
		Text:      strings.TrimSpace(text),
		Variables: merged,
		Depth:     depth,
	}

	elapsed := time.Since(start)
	g.logger.Debug("Generated text", "root", root, "depth", depth, "seeded", cfg.seed != nil, "duration", elapsed)
	if g.hooks.OnGenerate != nil {
		g.hooks.OnGenerate(&domain.GenerateEvent{
			Type:     domain.EventGenerateFinish,
			Root:     root,
			Depth:    depth,
			Duration: elapsed,
			Seeded:   cfg.seed != nil,
		})
	}

	return res, nil
}
