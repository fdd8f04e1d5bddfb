package domain

import "github.com/aretw0/mystem/pkg/grammem"

// DefaultWeight is used when the worker omits a candidate weight.
const DefaultWeight = 1.0

// TokenResult is the analysis of one token as segmented by the worker.
type TokenResult struct {
	// Text is the token exactly as the worker echoed it.
	Text string
	// Candidates is empty when the worker found no analysis.
	Candidates []Candidate
}

// Candidate is one possible lemma and grammem for a token.
type Candidate struct {
	Lemma   string
	Grammem grammem.Grammem
	// Weight is the plausibility in (0,1].
	Weight float64
	// Quality is the worker's optional "qual" marker, e.g. "bastard" for guessed words.
	Quality string
}

// Best returns the candidate with the highest weight. The first one wins ties.
func (t TokenResult) Best() (Candidate, bool) {
	if len(t.Candidates) == 0 {
		return Candidate{}, false
	}
	best := t.Candidates[0]
	for _, c := range t.Candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return best, true
}
