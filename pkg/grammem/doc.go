/*
Package grammem decodes mystem tag strings into typed grammatical facts.

A tag string such as "S,persn,famn=nom,sg" starts with a part-of-speech code
followed by fact codes separated by '=' and ','. Decode resolves every code
through fixed lookup tables:

	g, err := grammem.Decode("S,persn,famn=nom,sg")
	// g.PartOfSpeech == grammem.POSNoun
	// g.Facts        == [ProperNoun FamilyName Nominative Singular]
	// g.FactsRaw     == ["persn" "famn" "nom" "sg"]

Facts form a closed tagged union: every Fact is one of Case, Tense, Plurality,
Mood, AdjectiveForm, ComparativeDegree, Person, Gender, Aspect, Voice,
Animacy, Transitivity or Other. Consumers switch on the concrete type or on
Fact.Category.
*/
package grammem
