package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/mystem/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TokensMarkdown lays results out as a markdown table, one row per candidate.
// Tokens without candidates get a single row with a "?" lemma.
func TokensMarkdown(results []domain.TokenResult) string {
	var b strings.Builder
	b.WriteString("| Token | Lemma | Part of speech | Facts | Weight |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, tok := range results {
		if len(tok.Candidates) == 0 {
			fmt.Fprintf(&b, "| %s | ? | | | |\n", escape(tok.Text))
			continue
		}
		for i, c := range tok.Candidates {
			text := ""
			if i == 0 {
				text = escape(tok.Text)
			}
			facts := make([]string, 0, len(c.Grammem.Facts))
			for _, f := range c.Grammem.Facts {
				facts = append(facts, f.String())
			}
			lemma := escape(c.Lemma)
			if c.Quality != "" {
				lemma += " _(" + escape(c.Quality) + ")_"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.4g |\n",
				text, lemma, c.Grammem.PartOfSpeech, strings.Join(facts, ", "), c.Weight)
		}
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
