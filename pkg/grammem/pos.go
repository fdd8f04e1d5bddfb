package grammem

// PartOfSpeech is the mandatory head of every tag string.
type PartOfSpeech uint8

const (
	POSAdjective        PartOfSpeech = iota + 1 // A
	POSAdverb                                   // ADV
	POSAdverbPronominal                         // ADVPRO
	POSAdjectiveNumeral                         // ANUM
	POSAdjectivePronoun                         // APRO
	POSComposite                                // COM, part of a compound word
	POSConjunction                              // CONJ
	POSInterjection                             // INTJ
	POSNumeral                                  // NUM
	POSParticle                                 // PART
	POSPreposition                              // PR
	POSNoun                                     // S
	POSNounPronoun                              // SPRO
	POSVerb                                     // V
)

var posNames = []string{
	"",
	"Adjective",
	"Adverb",
	"AdverbPronominal",
	"AdjectiveNumeral",
	"AdjectivePronoun",
	"Composite",
	"Conjunction",
	"Interjection",
	"Numeral",
	"Particle",
	"Preposition",
	"Noun",
	"NounPronoun",
	"Verb",
}

func (p PartOfSpeech) String() string { return enumName(posNames, int(p)) }

// Code returns the mystem code for p, or "" if p is not a known value.
func (p PartOfSpeech) Code() string { return posCodes[p] }
