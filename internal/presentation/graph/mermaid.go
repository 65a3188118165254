package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rulegen/internal/runtime"
	"github.com/aretw0/rulegen/pkg/domain"
)

// Grammar is the read-only view of the loaded rules the diagram is drawn from.
type Grammar interface {
	AvailableSymbols() []string
	RulesForSymbol(symbol string) []domain.Rule
}

// GraphOverlay contains data from one generation to highlight on the graph.
type GraphOverlay struct {
	Root     string
	Expanded []string
}

// GenerateMermaid produces a Mermaid flowchart of symbol references.
// It applies semantic styling:
// - Root (overlay): ((Circle))
// - Symbol: [Rectangle]
// - Variable: (["Stadium"]), reached with a dotted arrow since it is never expanded
// - Undefined reference: {{Hexagon}}
// Each edge appears once per (symbol, reference) pair, labeled with the number of
// rules that contain it when more than one does.
func GenerateMermaid(g Grammar, vars map[string]string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	symbols := g.AvailableSymbols()
	defined := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		defined[sym] = true
	}

	var extra []string
	seenExtra := make(map[string]bool)

	for _, sym := range symbols {
		safeID := sanitizeMermaidID(sym)

		opener, closer := "[", "]"
		if overlay != nil && overlay.Root == sym {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(sym), closer))

		// Count, per reference, how many alternatives mention it.
		var order []string
		counts := make(map[string]int)
		for _, rule := range g.RulesForSymbol(sym) {
			inRule := make(map[string]bool)
			for _, ref := range runtime.Placeholders(rule.Text) {
				if inRule[ref] {
					continue
				}
				inRule[ref] = true
				if counts[ref] == 0 {
					order = append(order, ref)
				}
				counts[ref]++
			}
		}

		for _, ref := range order {
			_, isVar := vars[ref]
			if (isVar || !defined[ref]) && !seenExtra[ref] {
				seenExtra[ref] = true
				extra = append(extra, ref)
			}

			arrow := "-->"
			if isVar {
				arrow = "-.->"
			}
			if counts[ref] > 1 {
				arrow = fmt.Sprintf("-- \"%d rules\" -->", counts[ref])
				if isVar {
					arrow = fmt.Sprintf("-. \"%d rules\" .->", counts[ref])
				}
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, refID(ref, vars)))
		}
	}

	for _, ref := range extra {
		if _, isVar := vars[ref]; isVar {
			sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", refID(ref, vars), escapeLabel(ref)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s{{\"%s\"}}\n", refID(ref, vars), escapeLabel(ref)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, sym := range overlay.Expanded {
			safeID := sanitizeMermaidID(sym)
			if sym != overlay.Root && !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.Root != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Root)))
		}
	}

	return sb.String()
}

// refID keeps variable nodes apart from a symbol of the same name.
func refID(ref string, vars map[string]string) string {
	if _, ok := vars[ref]; ok {
		return "var_" + sanitizeMermaidID(ref)
	}
	return sanitizeMermaidID(ref)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "{", "_", "}", "_", "\"", "_")
	return r.Replace(id)
}
