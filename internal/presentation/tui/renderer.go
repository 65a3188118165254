package tui

import (
	"regexp"
	"strings"

	"github.com/aretw0/rulegen/pkg/domain"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

var markerPattern = regexp.MustCompile(`\[(` + domain.MarkerUndefined + `|` + domain.MarkerMaxDepth + `):[^\]]*\]`)

// HighlightMarkers colors the inline undefined and depth markers of a result
// using the terminal's detected color profile.
func HighlightMarkers(text string) string {
	return HighlightMarkersWithProfile(text, termenv.ColorProfile())
}

// HighlightMarkersWithProfile is HighlightMarkers with an explicit profile.
// termenv.Ascii leaves the text unchanged.
func HighlightMarkersWithProfile(text string, p termenv.Profile) string {
	if p == termenv.Ascii {
		return text
	}
	return markerPattern.ReplaceAllStringFunc(text, func(m string) string {
		color := "#f87171"
		if strings.HasPrefix(m, "["+domain.MarkerMaxDepth+":") {
			color = "#fbbf24"
		}
		return termenv.String(m).Foreground(p.Color(color)).Bold().String()
	})
}
