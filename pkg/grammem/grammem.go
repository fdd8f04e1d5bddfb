package grammem

import (
	"fmt"
	"strings"
)

// Grammem is the decoded form of one tag string.
// Facts[i] always describes FactsRaw[i].
type Grammem struct {
	PartOfSpeech PartOfSpeech
	Facts        []Fact
	FactsRaw     []string
}

// Has reports whether f is among the decoded facts.
func (g Grammem) Has(f Fact) bool {
	for _, got := range g.Facts {
		if got == f {
			return true
		}
	}
	return false
}

// Find returns the first fact of the given category.
func (g Grammem) Find(c Category) (Fact, bool) {
	for _, f := range g.Facts {
		if f.Category() == c {
			return f, true
		}
	}
	return nil, false
}

// Tag rebuilds a comma separated tag string from the part of speech and the raw facts.
func (g Grammem) Tag() string {
	parts := append([]string{g.PartOfSpeech.Code()}, g.FactsRaw...)
	return strings.Join(parts, ",")
}

// Policy selects how Decode treats fact codes missing from the fact table.
type Policy uint8

const (
	// PolicyStrict fails the whole decode with a GrammemError.
	PolicyStrict Policy = iota
	// PolicyIsolate keeps the code as an Unknown fact.
	PolicyIsolate
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyIsolate:
		return "isolate"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy parses "strict" or "isolate".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "isolate":
		return PolicyIsolate, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown grammeme policy %q (expected strict or isolate)", s)
	}
}

// Decode parses a tag string with PolicyStrict.
func Decode(tag string) (Grammem, error) {
	return DecodeWith(tag, PolicyStrict)
}

// DecodeWith parses a tag string such as "V,pf,intr=praet,sg,indic,m".
// The part of speech is mandatory under every policy.
func DecodeWith(tag string, policy Policy) (Grammem, error) {
	segments := strings.FieldsFunc(tag, func(r rune) bool {
		return r == '=' || r == ','
	})
	if len(segments) == 0 {
		return Grammem{}, &PartOfSpeechError{Tag: tag}
	}

	pos, ok := LookupPartOfSpeech(segments[0])
	if !ok {
		return Grammem{}, &PartOfSpeechError{Code: segments[0], Tag: tag}
	}

	raw := segments[1:]
	g := Grammem{
		PartOfSpeech: pos,
		Facts:        make([]Fact, 0, len(raw)),
		FactsRaw:     raw,
	}
	for _, code := range raw {
		f, ok := LookupFact(code)
		if !ok {
			if policy != PolicyIsolate {
				return Grammem{}, &GrammemError{Code: code, Tag: tag}
			}
			f = Unknown(code)
		}
		g.Facts = append(g.Facts, f)
	}
	return g, nil
}
