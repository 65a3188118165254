package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/rulegen/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightMarkers_AsciiIsUnchanged(t *testing.T) {
	in := "A [UNDEFINED:ghost] met [MAX_DEPTH:villain]."
	assert.Equal(t, in, tui.HighlightMarkersWithProfile(in, termenv.Ascii))
}

func TestHighlightMarkers_ColorsMarkers(t *testing.T) {
	in := "A [UNDEFINED:ghost] met [MAX_DEPTH:villain]."
	out := tui.HighlightMarkersWithProfile(in, termenv.TrueColor)

	assert.NotEqual(t, in, out)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "[UNDEFINED:ghost]")
	assert.Contains(t, out, "[MAX_DEPTH:villain]")
	assert.True(t, strings.HasPrefix(out, "A "))
}

func TestHighlightMarkers_PlainTextUntouched(t *testing.T) {
	in := "Hello, [World]!"
	assert.Equal(t, in, tui.HighlightMarkersWithProfile(in, termenv.TrueColor))
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title\n\nHello")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Hello")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Greater(t, strings.Count(buf.String(), "\n"), 6)
}
