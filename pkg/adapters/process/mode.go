package process

import (
	"fmt"
	"strings"
)

// Mode selects the fixed argument set the worker is launched with.
type Mode uint8

const (
	// ModeWeighted asks for every candidate with its weight.
	ModeWeighted Mode = iota
	// ModeDisambiguate asks for the single best candidate, without weights.
	ModeDisambiguate
)

// Args returns the worker command line for m: interactive line mode, JSON
// output and English grammeme codes, plus the mode specific flags.
func (m Mode) Args() []string {
	switch m {
	case ModeDisambiguate:
		return []string{"-i", "-d", "--format", "json", "--eng-gr"}
	default:
		return []string{"-i", "--format", "json", "--eng-gr", "--weight"}
	}
}

func (m Mode) String() string {
	switch m {
	case ModeWeighted:
		return "weighted"
	case ModeDisambiguate:
		return "disambiguate"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "weighted" or "disambiguate".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weighted":
		return ModeWeighted, nil
	case "disambiguate":
		return ModeDisambiguate, nil
	default:
		return ModeWeighted, fmt.Errorf("unknown worker mode %q (expected weighted or disambiguate)", s)
	}
}
