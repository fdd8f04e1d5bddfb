package dto

import (
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/grammem"
)

// Token is the transport form of domain.TokenResult.
type Token struct {
	Text       string      `json:"text"`
	Candidates []Candidate `json:"candidates"`
}

// Candidate is the transport form of domain.Candidate.
type Candidate struct {
	Lemma        string  `json:"lemma"`
	PartOfSpeech string  `json:"pos"`
	Tag          string  `json:"tag"`
	Facts        []Fact  `json:"facts"`
	Weight       float64 `json:"weight"`
	Quality      string  `json:"quality,omitempty"`
}

// Fact is one decoded grammeme with its category and the raw worker code.
type Fact struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Code     string `json:"code"`
}

// FromTokens maps domain results into transport tokens.
// The result is never nil so it encodes as a JSON array.
func FromTokens(results []domain.TokenResult) []Token {
	tokens := make([]Token, 0, len(results))
	for _, r := range results {
		tok := Token{Text: r.Text, Candidates: make([]Candidate, 0, len(r.Candidates))}
		for _, c := range r.Candidates {
			tok.Candidates = append(tok.Candidates, fromCandidate(c))
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func fromCandidate(c domain.Candidate) Candidate {
	return Candidate{
		Lemma:        c.Lemma,
		PartOfSpeech: c.Grammem.PartOfSpeech.String(),
		Tag:          c.Grammem.Tag(),
		Facts:        FromFacts(c.Grammem),
		Weight:       c.Weight,
		Quality:      c.Quality,
	}
}

// FromFacts pairs each decoded fact with its raw code.
func FromFacts(g grammem.Grammem) []Fact {
	facts := make([]Fact, 0, len(g.Facts))
	for i, f := range g.Facts {
		code := f.Code()
		if i < len(g.FactsRaw) {
			code = g.FactsRaw[i]
		}
		facts = append(facts, Fact{
			Category: f.Category().String(),
			Value:    f.String(),
			Code:     code,
		})
	}
	return facts
}

// TagTable lists every code known to the decoder, for discovery endpoints.
type TagTable struct {
	PartsOfSpeech map[string]string `json:"parts_of_speech"`
	Facts         map[string]Fact   `json:"facts"`
}

// Tags builds the TagTable from the decoder lookup tables.
func Tags() TagTable {
	t := TagTable{
		PartsOfSpeech: make(map[string]string),
		Facts:         make(map[string]Fact),
	}
	for _, code := range grammem.PartOfSpeechCodes() {
		pos, _ := grammem.LookupPartOfSpeech(code)
		t.PartsOfSpeech[code] = pos.String()
	}
	for _, code := range grammem.FactCodes() {
		f, _ := grammem.LookupFact(code)
		t.Facts[code] = Fact{Category: f.Category().String(), Value: f.String(), Code: code}
	}
	return t
}
