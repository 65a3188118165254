package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/presentation/graph"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/random"
)

// RunSymbols lists the loaded symbols, one per line, with their rule count.
func RunSymbols(ctx context.Context, out io.Writer, opts SourceOptions, logger *slog.Logger) error {
	gen, err := NewGenerator(ctx, opts, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, sym := range gen.AvailableSymbols() {
		fmt.Fprintf(tw, "%s\t%d\n", sym, len(gen.RulesForSymbol(sym)))
	}
	return tw.Flush()
}

// RunRules prints the alternatives of symbol with their share of the total weight.
func RunRules(ctx context.Context, out io.Writer, opts SourceOptions, symbol string, logger *slog.Logger) error {
	gen, err := NewGenerator(ctx, opts, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	rules := gen.RulesForSymbol(symbol)
	if len(rules) == 0 {
		return fmt.Errorf("no rules for symbol %q", symbol)
	}

	var total float64
	for _, r := range rules {
		total += r.EffectiveWeight()
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rules {
		tags := ""
		if len(r.Tags) > 0 {
			tags = "[" + strings.Join(r.Tags, ", ") + "]"
		}
		share := r.EffectiveWeight() / total * 100
		fmt.Fprintf(tw, "%.1f%%\t%s\t%s\n", share, r.Text, tags)
	}
	return tw.Flush()
}

// GraphOptions holds the flags of the graph command.
type GraphOptions struct {
	SourceOptions
	// Root, when set, is expanded once and the visited symbols are highlighted.
	Root    string
	Seed    string
	HasSeed bool
}

// RunGraph writes a Mermaid diagram of symbol references.
func RunGraph(ctx context.Context, out io.Writer, opts GraphOptions, logger *slog.Logger) error {
	var expanded []string
	hooks := domain.LifecycleHooks{
		OnSymbolExpand: func(e *domain.SymbolEvent) {
			expanded = append(expanded, e.Symbol)
		},
	}

	gen, err := NewGenerator(ctx, opts.SourceOptions, logger, hooks)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Root != "" {
		var genOpts []rulegen.GenerateOption
		if opts.HasSeed {
			genOpts = append(genOpts, rulegen.WithSeed(random.ParseSeed(opts.Seed)))
		}
		if _, err := gen.Generate(opts.Root, genOpts...); err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{Root: opts.Root, Expanded: expanded}
	}

	_, err = io.WriteString(out, graph.GenerateMermaid(gen, gen.Variables(), overlay))
	return err
}
