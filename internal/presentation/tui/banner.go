package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the mystem banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _ __ ___  _   _ ___| |_ ___ _ __ ___  ", "#34d399"},
		{" | '_ ` _ \\| | | / __| __/ _ \\ '_ ` _ \\ ", "#2dd4bf"},
		{" | | | | | | |_| \\__ \\ ||  __/ | | | | |", "#22d3ee"},
		{" |_| |_| |_|\\__, |___/\\__\\___|_| |_| |_|", "#38bdf8"},
		{"            |___/                       ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
