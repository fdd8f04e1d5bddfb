package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/mystem/internal/dto"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTokens(t *testing.T) {
	g, err := grammem.DecodeWith("S,persn,famn=nom,zz", grammem.PolicyIsolate)
	require.NoError(t, err)

	tokens := dto.FromTokens([]domain.TokenResult{
		{Text: "Иванов", Candidates: []domain.Candidate{{Lemma: "иванов", Grammem: g, Weight: 0.5, Quality: "bastard"}}},
		{Text: "мыла"},
	})
	require.Len(t, tokens, 2)

	c := tokens[0].Candidates[0]
	assert.Equal(t, "иванов", c.Lemma)
	assert.Equal(t, "Noun", c.PartOfSpeech)
	assert.Equal(t, "S,persn,famn,nom,zz", c.Tag)
	assert.Equal(t, []dto.Fact{
		{Category: "Other", Value: "ProperNoun", Code: "persn"},
		{Category: "Other", Value: "FamilyName", Code: "famn"},
		{Category: "Case", Value: "Nominative", Code: "nom"},
		{Category: "Unknown", Value: "Unknown(zz)", Code: "zz"},
	}, c.Facts)

	data, err := json.Marshal(tokens[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"мыла","candidates":[]}`, string(data))
}

func TestFromTokens_EmptyIsArray(t *testing.T) {
	data, err := json.Marshal(dto.FromTokens(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestTags(t *testing.T) {
	tags := dto.Tags()
	assert.Len(t, tags.PartsOfSpeech, len(grammem.PartOfSpeechCodes()))
	assert.Equal(t, "Verb", tags.PartsOfSpeech["V"])
	assert.Equal(t, dto.Fact{Category: "Tense", Value: "Past", Code: "praet"}, tags.Facts["praet"])
	assert.Equal(t, "Prepositional", tags.Facts["abl"].Value)
}
