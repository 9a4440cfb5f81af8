package nlu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase and accents", "¿Qué es la RULETA?", "que es la ruleta"},
		{"enye folded", "AÑO", "ano"},
		{"collapse whitespace", "  rojo   ruleta  ", "rojo ruleta"},
		{"question marks stripped", "¡Probabilidad!", "probabilidad"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"spanish question", "cual es la probabilidad de rojo en la ruleta", "es"},
		{"english question", "what is the house edge in roulette", "en"},
		{"tie defaults to spanish", "blackjack", "es"},
		{"empty defaults to spanish", "", "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(Tokenize(Normalize(tt.query))))
		})
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"probabilidad de ganar en la ruleta", IntentProbability},
		{"what are the odds of red", IntentProbability},
		{"cuanto paga un pleno", IntentPayout},
		{"reglas del blackjack", IntentRules},
		{"how do you play craps", IntentRules},
		{"mejor estrategia para blackjack", IntentStrategy},
		{"ruleta vs blackjack", IntentComparison},
		{"ventaja de la casa en la ruleta", IntentHouseEdge},
		{"que es el baccarat", IntentDefinition},
		{"casino madrid", IntentSearch},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyIntent(Normalize(tt.query)))
		})
	}
}

func TestIntentPriorityProbabilityBeatsDefinition(t *testing.T) {
	// Both "que es" and "probabilidad" appear; the cascade order decides
	assert.Equal(t, IntentProbability, ClassifyIntent("que es la probabilidad de rojo"))
}

func TestProcessQueryRedRoulette(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	result := engine.ProcessQuery("¿Cuál es la probabilidad de que salga rojo en la ruleta?")

	assert.Equal(t, "es", result.Language)
	assert.Equal(t, IntentProbability, result.Intent)
	assert.Equal(t, "ruleta", result.Game)
	assert.Equal(t, "redRoulette", result.SubPattern)
	assert.Contains(t, result.ContextualAnswer, "48.65%")
	assert.Contains(t, result.Keywords, "ruleta")
	assert.Contains(t, result.SearchTerms, "ruleta")
}

func TestProcessQueryEnglishHouseEdge(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	result := engine.ProcessQuery("What is the house edge in roulette?")

	assert.Equal(t, "en", result.Language)
	assert.Equal(t, IntentHouseEdge, result.Intent)
	assert.Equal(t, "ruleta", result.Game)
	assert.Contains(t, result.ContextualAnswer, "2.70%")
	assert.NotContains(t, result.ContextualAnswer, "ventaja", "english query gets the english answer")
}

func TestProcessQuerySubPatternUpgradesSearch(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	// No intent keyword fires, but the red+roulette sub-pattern does
	result := engine.ProcessQuery("rojo ruleta")

	assert.Equal(t, IntentSpecific, result.Intent)
	assert.Equal(t, "redRoulette", result.SubPattern)
	assert.Contains(t, result.ContextualAnswer, "48.65%")
}

func TestProcessQuerySynonymExpansion(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	result := engine.ProcessQuery("tragamonedas")

	assert.Contains(t, result.Keywords, "tragaperras")
	assert.Contains(t, result.SearchTerms, "tragaperras")
	assert.Contains(t, result.SearchTerms, "slots")
}

func TestProcessQueryNoGame(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	result := engine.ProcessQuery("probabilidad de ganar")

	assert.Empty(t, result.Game)
	assert.Empty(t, result.ContextualAnswer)
	assert.Equal(t, IntentProbability, result.Intent)
	assert.NotEmpty(t, result.SearchTerms)
}

func TestProcessQueryNeverEmptyTermsForNonEmptyInput(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	inputs := []string{
		"xyzzy plugh",
		"¿¿¿???",
		strings.Repeat("a", 500),
		"12345",
	}
	for _, input := range inputs {
		result := engine.ProcessQuery(input)
		if Normalize(input) != "" {
			assert.NotEmpty(t, result.SearchTerms, "query %q", input)
		}
		assert.NotEmpty(t, result.Language)
	}
}

func TestExtractSearchTerms(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	terms := engine.ExtractSearchTerms("reglas de la ruleta europea")

	assert.Contains(t, terms, "ruleta")
	assert.Contains(t, terms, "roulette")
}

func TestFallbackResult(t *testing.T) {
	result := fallbackResult("Qué Pasa")

	assert.Equal(t, "qué pasa", result.Normalized)
	assert.Equal(t, "es", result.Language)
	assert.Equal(t, []string{"Qué Pasa"}, result.SearchTerms)
	assert.Equal(t, IntentSearch, result.Intent)
}
