package grammem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PartOfSpeechAlone(t *testing.T) {
	for _, code := range PartOfSpeechCodes() {
		t.Run(code, func(t *testing.T) {
			g, err := Decode(code)
			require.NoError(t, err)
			assert.Equal(t, partsOfSpeech[code], g.PartOfSpeech)
			assert.Empty(t, g.Facts)
			assert.Empty(t, g.FactsRaw)
			assert.Equal(t, code, g.PartOfSpeech.Code())
		})
	}
}

func TestDecode_SingleFact(t *testing.T) {
	for _, code := range FactCodes() {
		t.Run(code, func(t *testing.T) {
			g, err := Decode("S=" + code)
			require.NoError(t, err)
			assert.Equal(t, POSNoun, g.PartOfSpeech)
			require.Len(t, g.Facts, 1)
			assert.Equal(t, facts[code], g.Facts[0])
			assert.Equal(t, facts[code].Category(), g.Facts[0].Category())
			assert.Equal(t, []string{code}, g.FactsRaw)
			assert.Equal(t, code, g.Facts[0].Code())
		})
	}
}

func TestDecode_FullTag(t *testing.T) {
	g, err := Decode("S,persn,famn=nom,sg")
	require.NoError(t, err)

	assert.Equal(t, POSNoun, g.PartOfSpeech)
	assert.Equal(t, []Fact{ProperNoun, FamilyName, Nominative, Singular}, g.Facts)
	assert.Equal(t, []string{"persn", "famn", "nom", "sg"}, g.FactsRaw)
	assert.Equal(t, "S,persn,famn,nom,sg", g.Tag())
}

func TestDecode_Verb(t *testing.T) {
	g, err := Decode("V,pf,intr=praet,sg,indic,m")
	require.NoError(t, err)

	assert.Equal(t, POSVerb, g.PartOfSpeech)
	assert.True(t, g.Has(Perfective))
	assert.True(t, g.Has(Past))
	assert.False(t, g.Has(Feminine))

	gender, ok := g.Find(CategoryGender)
	require.True(t, ok)
	assert.Equal(t, Masculine, gender)

	_, ok = g.Find(CategoryCase)
	assert.False(t, ok)
}

func TestDecode_DiscardsEmptySegments(t *testing.T) {
	g, err := Decode(",,A=,,brev,,=m")
	require.NoError(t, err)
	assert.Equal(t, POSAdjective, g.PartOfSpeech)
	assert.Equal(t, []string{"brev", "m"}, g.FactsRaw)
	assert.Equal(t, []Fact{Short, Masculine}, g.Facts)
}

func TestDecode_UnknownPartOfSpeech(t *testing.T) {
	_, err := Decode("ZZZ")
	require.Error(t, err)

	var posErr *PartOfSpeechError
	require.True(t, errors.As(err, &posErr))
	assert.Equal(t, "ZZZ", posErr.Code)
	assert.ErrorIs(t, err, ErrUnknownPartOfSpeech)

	// The head is mandatory even when isolating fact failures.
	_, err = DecodeWith("ZZZ=nom", PolicyIsolate)
	assert.ErrorIs(t, err, ErrUnknownPartOfSpeech)
}

func TestDecode_EmptyTag(t *testing.T) {
	for _, tag := range []string{"", ",", "=,="} {
		_, err := Decode(tag)
		assert.ErrorIs(t, err, ErrUnknownPartOfSpeech, "tag %q", tag)
	}
}

func TestDecode_UnknownFact(t *testing.T) {
	_, err := Decode("S=nom,bogus")
	require.Error(t, err)

	var grErr *GrammemError
	require.True(t, errors.As(err, &grErr))
	assert.Equal(t, "bogus", grErr.Code)
	assert.Equal(t, "S=nom,bogus", grErr.Tag)
	assert.ErrorIs(t, err, ErrUnknownFact)
	assert.NotErrorIs(t, err, ErrUnknownPartOfSpeech)
}

func TestDecode_IsolatePolicyKeepsCorrespondence(t *testing.T) {
	g, err := DecodeWith("S,m,inan=(acc,sg|nom,sg)", PolicyIsolate)
	require.NoError(t, err)

	require.Len(t, g.Facts, len(g.FactsRaw))
	assert.Equal(t, []Fact{Masculine, Inanimate}, g.Facts[:2])
	assert.Equal(t, Unknown("(acc"), g.Facts[2])
	assert.Equal(t, CategoryUnknown, g.Facts[3].Category())
	assert.Equal(t, "sg|nom", g.Facts[3].Code())
	assert.Equal(t, Unknown("sg)"), g.Facts[4])
}

func TestDecode_FactsMatchRaw(t *testing.T) {
	tags := []string{
		"A=gen,pl,plen",
		"ADV",
		"SPRO,mf,sg=dat",
		"V,ipf,intr=inpraes,sg,indic,3p",
		"V,pf,tran=ger",
		"A=supr,brev,n,sg",
		"S,geo,f,inan,obsol=abl,sg",
	}
	for _, tag := range tags {
		g, err := Decode(tag)
		require.NoError(t, err, tag)
		require.Len(t, g.Facts, len(g.FactsRaw), tag)
		for i, f := range g.Facts {
			assert.Equal(t, g.FactsRaw[i], f.Code(), tag)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("isolate")
	require.NoError(t, err)
	assert.Equal(t, PolicyIsolate, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	_, err = ParsePolicy("lenient")
	assert.Error(t, err)
}

func TestTables_AreBijective(t *testing.T) {
	assert.Len(t, posCodes, len(partsOfSpeech))
	assert.Len(t, factCodes, len(facts))

	seen := map[Category]bool{}
	for _, f := range facts {
		seen[f.Category()] = true
		assert.NotEqual(t, CategoryUnknown, f.Category())
	}
	// Every closed category is reachable from the table.
	for c := CategoryCase; c <= CategoryOther; c++ {
		assert.True(t, seen[c], "no code for category %s", c)
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Noun", POSNoun.String())
	assert.Equal(t, "Prepositional", Prepositional.String())
	assert.Equal(t, "FamilyName", FamilyName.String())
	assert.Equal(t, "Unknown(xx)", Unknown("xx").String())
	assert.Equal(t, "ComparativeDegree", CategoryComparativeDegree.String())
	assert.Equal(t, "42", PartOfSpeech(42).String())
}
