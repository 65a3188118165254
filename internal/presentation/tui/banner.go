package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the rulegen ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"             _                       ", "#34d399"},
		{"  _ __ _   _| | ___  __ _  ___ _ __  ", "#2dd4bf"},
		{" | '__| | | | |/ _ \\/ _` |/ _ \\ '_ \\ ", "#22d3ee"},
		{" | |  | |_| | |  __/ (_| |  __/ | | |", "#38bdf8"},
		{" |_|   \\__,_|_|\\___|\\__, |\\___|_| |_|", "#60a5fa"},
		{"                    |___/            ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
