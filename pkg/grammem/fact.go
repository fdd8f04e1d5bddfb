package grammem

import "strconv"

// Category identifies which closed enumeration a Fact belongs to.
type Category uint8

const (
	CategoryCase Category = iota + 1
	CategoryTense
	CategoryPlurality
	CategoryMood
	CategoryAdjectiveForm
	CategoryComparativeDegree
	CategoryPerson
	CategoryGender
	CategoryAspect
	CategoryVoice
	CategoryAnimacy
	CategoryTransitivity
	CategoryOther
	// CategoryUnknown marks a code that is not in the fact table.
	// It only appears when decoding with PolicyIsolate.
	CategoryUnknown
)

var categoryNames = []string{
	"",
	"Case",
	"Tense",
	"Plurality",
	"Mood",
	"AdjectiveForm",
	"ComparativeDegree",
	"Person",
	"Gender",
	"Aspect",
	"Voice",
	"Animacy",
	"Transitivity",
	"Other",
	"Unknown",
}

// String returns the category name, e.g. "Case".
func (c Category) String() string { return enumName(categoryNames, int(c)) }

// Fact is a single grammatical property of a candidate analysis.
// The set of implementations is closed to this package.
type Fact interface {
	Category() Category
	// Code returns the mystem code the fact was decoded from.
	Code() string
	String() string
	isFact()
}

// Case is the grammatical case of nouns, adjectives and participles.
type Case uint8

const (
	Nominative Case = iota + 1
	Genitive
	Dative
	Accusative
	Instrumental
	Prepositional
	Partitive // second genitive
	Locative  // second prepositional
	Vocative
)

var caseNames = []string{"", "Nominative", "Genitive", "Dative", "Accusative",
	"Instrumental", "Prepositional", "Partitive", "Locative", "Vocative"}

// Tense is the verb tense.
type Tense uint8

const (
	Present Tense = iota + 1
	Inpresent // non-past
	Past
)

var tenseNames = []string{"", "Present", "Inpresent", "Past"}

// Plurality is grammatical number.
type Plurality uint8

const (
	Plural Plurality = iota + 1
	Singular
)

var pluralityNames = []string{"", "Plural", "Singular"}

// Mood covers verb moods and the non-finite forms mystem reports with them.
type Mood uint8

const (
	Gerund Mood = iota + 1
	Infinitive
	Participle
	Indicative
	Imperative
)

var moodNames = []string{"", "Gerund", "Infinitive", "Participle", "Indicative", "Imperative"}

// AdjectiveForm is the form of an adjective.
type AdjectiveForm uint8

const (
	Short AdjectiveForm = iota + 1
	Long
	Possessive
)

var adjectiveFormNames = []string{"", "Short", "Long", "Possessive"}

// ComparativeDegree is the degree of comparison.
type ComparativeDegree uint8

const (
	Superlative ComparativeDegree = iota + 1
	Comparative
)

var degreeNames = []string{"", "Superlative", "Comparative"}

// Person is the grammatical person of verbs and pronouns.
type Person uint8

const (
	First Person = iota + 1
	Second
	Third
)

var personNames = []string{"", "First", "Second", "Third"}

// Gender is the grammatical gender.
type Gender uint8

const (
	Masculine Gender = iota + 1
	Feminine
	Neuter
)

var genderNames = []string{"", "Masculine", "Feminine", "Neuter"}

// Aspect is the verbal aspect.
type Aspect uint8

const (
	Perfective Aspect = iota + 1
	Imperfective
)

var aspectNames = []string{"", "Perfective", "Imperfective"}

// Voice is the verb and participle voice.
type Voice uint8

const (
	Passive Voice = iota + 1
	Active
)

var voiceNames = []string{"", "Passive", "Active"}

// Animacy of nouns.
type Animacy uint8

const (
	Animate Animacy = iota + 1
	Inanimate
)

var animacyNames = []string{"", "Animate", "Inanimate"}

// Transitivity of verbs.
type Transitivity uint8

const (
	Transitive Transitivity = iota + 1
	Intransitive
)

var transitivityNames = []string{"", "Transitive", "Intransitive"}

// Other holds pragmatic and usage markers that are not grammatical categories.
type Other uint8

const (
	Parenthesis  Other = iota + 1 // parenthetical word
	Geo                           // geographical name
	Awkward                       // form is hard to produce
	ProperNoun                    // personal name
	Distorted                     // distorted form
	CommonForm                    // common masculine/feminine form
	Obscene                       // obscene vocabulary
	Patronymic                    // patronymic
	Predicative                   // predicative
	Informal                      // colloquial form
	Rare                          // rarely used word
	Abbreviation                  // abbreviation
	Obsolete                      // obsolete form
	FamilyName                    // surname
)

var otherNames = []string{"", "Parenthesis", "Geo", "Awkward", "ProperNoun", "Distorted",
	"CommonForm", "Obscene", "Patronymic", "Predicative", "Informal", "Rare",
	"Abbreviation", "Obsolete", "FamilyName"}

// Unknown carries a fact code missing from the fact table.
type Unknown string

func (Case) Category() Category              { return CategoryCase }
func (Tense) Category() Category             { return CategoryTense }
func (Plurality) Category() Category         { return CategoryPlurality }
func (Mood) Category() Category              { return CategoryMood }
func (AdjectiveForm) Category() Category     { return CategoryAdjectiveForm }
func (ComparativeDegree) Category() Category { return CategoryComparativeDegree }
func (Person) Category() Category            { return CategoryPerson }
func (Gender) Category() Category            { return CategoryGender }
func (Aspect) Category() Category            { return CategoryAspect }
func (Voice) Category() Category             { return CategoryVoice }
func (Animacy) Category() Category           { return CategoryAnimacy }
func (Transitivity) Category() Category      { return CategoryTransitivity }
func (Other) Category() Category             { return CategoryOther }
func (Unknown) Category() Category           { return CategoryUnknown }

func (v Case) String() string              { return enumName(caseNames, int(v)) }
func (v Tense) String() string             { return enumName(tenseNames, int(v)) }
func (v Plurality) String() string         { return enumName(pluralityNames, int(v)) }
func (v Mood) String() string              { return enumName(moodNames, int(v)) }
func (v AdjectiveForm) String() string     { return enumName(adjectiveFormNames, int(v)) }
func (v ComparativeDegree) String() string { return enumName(degreeNames, int(v)) }
func (v Person) String() string            { return enumName(personNames, int(v)) }
func (v Gender) String() string            { return enumName(genderNames, int(v)) }
func (v Aspect) String() string            { return enumName(aspectNames, int(v)) }
func (v Voice) String() string             { return enumName(voiceNames, int(v)) }
func (v Animacy) String() string           { return enumName(animacyNames, int(v)) }
func (v Transitivity) String() string      { return enumName(transitivityNames, int(v)) }
func (v Other) String() string             { return enumName(otherNames, int(v)) }
func (u Unknown) String() string           { return "Unknown(" + string(u) + ")" }

func (v Case) Code() string              { return factCodes[v] }
func (v Tense) Code() string             { return factCodes[v] }
func (v Plurality) Code() string         { return factCodes[v] }
func (v Mood) Code() string              { return factCodes[v] }
func (v AdjectiveForm) Code() string     { return factCodes[v] }
func (v ComparativeDegree) Code() string { return factCodes[v] }
func (v Person) Code() string            { return factCodes[v] }
func (v Gender) Code() string            { return factCodes[v] }
func (v Aspect) Code() string            { return factCodes[v] }
func (v Voice) Code() string             { return factCodes[v] }
func (v Animacy) Code() string           { return factCodes[v] }
func (v Transitivity) Code() string      { return factCodes[v] }
func (v Other) Code() string             { return factCodes[v] }
func (u Unknown) Code() string           { return string(u) }

func (Case) isFact()              {}
func (Tense) isFact()             {}
func (Plurality) isFact()         {}
func (Mood) isFact()              {}
func (AdjectiveForm) isFact()     {}
func (ComparativeDegree) isFact() {}
func (Person) isFact()            {}
func (Gender) isFact()            {}
func (Aspect) isFact()            {}
func (Voice) isFact()             {}
func (Animacy) isFact()           {}
func (Transitivity) isFact()      {}
func (Other) isFact()             {}
func (Unknown) isFact()           {}

func enumName(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return strconv.Itoa(i)
	}
	return names[i]
}
