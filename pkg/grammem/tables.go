package grammem

import "sort"

var partsOfSpeech = map[string]PartOfSpeech{
	"A":      POSAdjective,
	"ADV":    POSAdverb,
	"ADVPRO": POSAdverbPronominal,
	"ANUM":   POSAdjectiveNumeral,
	"APRO":   POSAdjectivePronoun,
	"COM":    POSComposite,
	"CONJ":   POSConjunction,
	"INTJ":   POSInterjection,
	"NUM":    POSNumeral,
	"PART":   POSParticle,
	"PR":     POSPreposition,
	"S":      POSNoun,
	"SPRO":   POSNounPronoun,
	"V":      POSVerb,
}

var facts = map[string]Fact{
	"nom":  Nominative,
	"gen":  Genitive,
	"dat":  Dative,
	"acc":  Accusative,
	"ins":  Instrumental,
	"abl":  Prepositional,
	"part": Partitive,
	"loc":  Locative,
	"voc":  Vocative,

	"praes":   Present,
	"inpraes": Inpresent,
	"praet":   Past,

	"sg": Singular,
	"pl": Plural,

	"ger":    Gerund,
	"inf":    Infinitive,
	"partcp": Participle,
	"indic":  Indicative,
	"imper":  Imperative,

	"brev": Short,
	"plen": Long,
	"poss": Possessive,

	"supr": Superlative,
	"comp": Comparative,

	"1p": First,
	"2p": Second,
	"3p": Third,

	"m": Masculine,
	"f": Feminine,
	"n": Neuter,

	"pf":  Perfective,
	"ipf": Imperfective,

	"act":  Active,
	"pass": Passive,

	"anim": Animate,
	"inan": Inanimate,

	"tran": Transitive,
	"intr": Intransitive,

	"parenth": Parenthesis,
	"geo":     Geo,
	"awkw":    Awkward,
	"persn":   ProperNoun,
	"dist":    Distorted,
	"mf":      CommonForm,
	"obsc":    Obscene,
	"patrn":   Patronymic,
	"praed":   Predicative,
	"inform":  Informal,
	"rare":    Rare,
	"abbr":    Abbreviation,
	"obsol":   Obsolete,
	"famn":    FamilyName,
}

var (
	posCodes  = make(map[PartOfSpeech]string, len(partsOfSpeech))
	factCodes = make(map[Fact]string, len(facts))
)

func init() {
	for code, pos := range partsOfSpeech {
		posCodes[pos] = code
	}
	for code, f := range facts {
		factCodes[f] = code
	}
}

// LookupPartOfSpeech resolves a part-of-speech code such as "S" or "ADVPRO".
func LookupPartOfSpeech(code string) (PartOfSpeech, bool) {
	pos, ok := partsOfSpeech[code]
	return pos, ok
}

// LookupFact resolves a fact code such as "nom" or "famn".
func LookupFact(code string) (Fact, bool) {
	f, ok := facts[code]
	return f, ok
}

// PartOfSpeechCodes returns every known part-of-speech code, sorted.
func PartOfSpeechCodes() []string {
	return sortedKeys(partsOfSpeech)
}

// FactCodes returns every known fact code, sorted.
func FactCodes() []string {
	return sortedKeys(facts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
