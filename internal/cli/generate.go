package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/presentation/tui"
	"github.com/aretw0/rulegen/internal/sanitize"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/random"
)

// GenerateOptions holds the flags of the generate command.
type GenerateOptions struct {
	SourceOptions
	Symbol         string
	Seed           string
	HasSeed        bool
	Vars           []string
	AllowUndefined bool
	Count          int
	JSON           bool
	Markdown       bool
	// Color highlights inline markers. Callers enable it only for terminals.
	Color bool
}

type generateOutput struct {
	Results []*domain.Result `json:"results"`
}

// RunGenerate expands the symbol Count times and writes the results to out.
func RunGenerate(ctx context.Context, out io.Writer, opts GenerateOptions, logger *slog.Logger) error {
	if opts.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", domain.ErrInvalidArgument)
	}
	if opts.Count == 0 {
		opts.Count = 1
	}
	if opts.Count < 1 || opts.Count > domain.MaxCount {
		return fmt.Errorf("%w: count must be between 1 and %d, got %d", domain.ErrInvalidArgument, domain.MaxCount, opts.Count)
	}

	vars, err := parseVars(opts.Vars)
	if err != nil {
		return err
	}
	vars, err = sanitize.Variables(vars, sanitize.DefaultMaxInputSize)
	if err != nil {
		return err
	}

	gen, err := NewGenerator(ctx, opts.SourceOptions, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	genOpts := []rulegen.GenerateOption{
		rulegen.WithVariables(vars),
		rulegen.WithAllowUndefined(opts.AllowUndefined),
	}
	if opts.HasSeed {
		genOpts = append(genOpts, rulegen.WithSeed(random.ParseSeed(opts.Seed)))
	}

	results, err := gen.GenerateN(opts.Symbol, opts.Count, genOpts...)
	if err != nil {
		return err
	}

	switch {
	case opts.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{Results: results})
	case opts.Markdown:
		rendered, err := tui.NewRenderer()(resultsMarkdown(opts.Symbol, results))
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(out, rendered)
		return err
	default:
		for _, res := range results {
			text := res.Text
			if opts.Color {
				text = tui.HighlightMarkers(text)
			}
			if _, err := fmt.Fprintln(out, text); err != nil {
				return err
			}
		}
		return nil
	}
}

func resultsMarkdown(symbol string, results []*domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", symbol)
	if len(results) == 1 {
		sb.WriteString(results[0].Text)
		sb.WriteString("\n")
		return sb.String()
	}
	for i, res := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, res.Text)
	}
	return sb.String()
}
