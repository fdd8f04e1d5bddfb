package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/mystem/internal/dto"
	"github.com/aretw0/mystem/internal/presentation/tui"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/ports"
	"golang.org/x/term"
)

// Output formats of the analyze command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// Printer writes analysis results in one output format.
type Printer struct {
	Format string
	Out    io.Writer

	render func(string) (string, error)
}

// NewPrinter validates format and prepares the markdown renderer when needed.
func NewPrinter(format string, out io.Writer) (*Printer, error) {
	p := &Printer{Format: format, Out: out}
	switch format {
	case FormatJSON, FormatPlain:
	case FormatTable:
		p.render = tui.NewRenderer()
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table, json or plain)", format)
	}
	return p, nil
}

// Print writes results for one analyzed text.
func (p *Printer) Print(results []domain.TokenResult) error {
	switch p.Format {
	case FormatJSON:
		return json.NewEncoder(p.Out).Encode(dto.FromTokens(results))
	case FormatPlain:
		_, err := fmt.Fprintln(p.Out, Plain(results))
		return err
	default:
		if len(results) == 0 {
			_, err := fmt.Fprintln(p.Out, "(no tokens)")
			return err
		}
		out, err := p.render(tui.TokensMarkdown(results))
		if err != nil {
			return err
		}
		_, err = io.WriteString(p.Out, out)
		return err
	}
}

// Plain renders results in mystem's brace notation: text{lemma|lemma}.
func Plain(results []domain.TokenResult) string {
	words := make([]string, 0, len(results))
	for _, tok := range results {
		lemmas := make([]string, 0, len(tok.Candidates))
		for _, c := range tok.Candidates {
			lemmas = append(lemmas, c.Lemma)
		}
		if len(lemmas) == 0 {
			lemmas = append(lemmas, "?")
		}
		words = append(words, tok.Text+"{"+strings.Join(lemmas, "|")+"}")
	}
	return strings.Join(words, " ")
}

// AnalyzeText analyzes a single text and prints the result.
func AnalyzeText(ctx context.Context, an ports.Analyzer, text string, p *Printer) error {
	results, err := an.Stemming(ctx, text)
	if err != nil {
		return err
	}
	return p.Print(results)
}

// AnalyzeStream analyzes in line by line until EOF or ctx is done.
// A failing line is logged and skipped; only read errors and cancellation end the loop.
// When prompt is set, "> " is written before each line.
func AnalyzeStream(ctx context.Context, an ports.Analyzer, in io.Reader, p *Printer, prompt bool, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for {
		if prompt {
			fmt.Fprint(p.Out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := AnalyzeText(ctx, an, line, p); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Error("analysis failed", "error", err)
			if prompt {
				fmt.Fprintf(p.Out, "error: %v\n", err)
			}
		}
	}
	if prompt {
		fmt.Fprintln(p.Out)
	}
	return scanner.Err()
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
