package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludokb/ludokb-go/pkg/models"
)

func localCandidate(name string, relevance float64) models.Candidate {
	return models.NewLocalCandidate("http://example.org/casino#"+name, name, map[string]any{}, relevance)
}

func remoteCandidate(name string, relevance float64) models.Candidate {
	cand := models.NewRemoteCandidate("http://dbpedia.org/resource/"+name, name, "en")
	cand.Relevance = relevance
	return cand
}

func TestLocalWinsAtEqualBaseScore(t *testing.T) {
	engine := NewEngine()

	local := []models.Candidate{localCandidate("Omaha", 5)}
	external := models.ExternalResult{
		English: []models.Candidate{remoteCandidate("Texas", 5)},
		Total:   1,
	}

	// Neither name matches the query, so only the origin boost separates them
	ranked, stats := engine.CombineAndRank(local, external, "zzz", 0)

	assert.Len(t, ranked, 2)
	assert.Equal(t, models.OriginLocal, ranked[0].Origin)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.LocalCount)
	assert.Equal(t, 1, stats.ExternalCount)
	assert.InDelta(t, 5*LocalBoost, stats.MaxRelevance, 1e-9)
}

func TestDedupeNearIdenticalNames(t *testing.T) {
	engine := NewEngine()

	local := []models.Candidate{localCandidate("Blackjack", 8)}
	external := models.ExternalResult{
		English: []models.Candidate{remoteCandidate("Blackjack (casino game)", 2)},
		Total:   1,
	}

	ranked, _ := engine.CombineAndRank(local, external, "blackjack", 0)

	assert.Len(t, ranked, 1, "near-identical names must fold to one entry")
	assert.Equal(t, models.OriginLocal, ranked[0].Origin, "the higher-scoring variant survives")
}

func TestDedupeKeepsHigherScoreRegardlessOfOrder(t *testing.T) {
	engine := NewEngine()

	// Remote entry arrives second but scores higher; it must survive
	local := []models.Candidate{localCandidate("Craps", 0)}
	rich := remoteCandidate("Craps", 20)
	external := models.ExternalResult{English: []models.Candidate{rich}, Total: 1}

	ranked, _ := engine.CombineAndRank(local, external, "zzz", 0)

	assert.Len(t, ranked, 1)
	assert.Equal(t, models.OriginRemote, ranked[0].Origin)
}

func TestExactNameMatchBonus(t *testing.T) {
	engine := NewEngine()

	local := []models.Candidate{
		localCandidate("Ruleta", 3),
		localCandidate("Poker", 3),
	}

	ranked, _ := engine.CombineAndRank(local, models.ExternalResult{}, "ruleta", 0)

	assert.Equal(t, "Ruleta", ranked[0].DisplayName)
}

func TestSubstringMatchBonus(t *testing.T) {
	engine := NewEngine()

	local := []models.Candidate{
		localCandidate("Poker", 3),
		localCandidate("Ruleta", 3),
	}

	// Query contains the name as a word, not an exact match
	ranked, _ := engine.CombineAndRank(local, models.ExternalResult{}, "reglas de la ruleta europea", 0)

	assert.Equal(t, "Ruleta", ranked[0].DisplayName)
}

func TestMaxResultsTruncation(t *testing.T) {
	engine := NewEngine()

	var local []models.Candidate
	names := []string{"Uno", "Dos", "Tres", "Cuatro", "Cinco"}
	for i, name := range names {
		local = append(local, localCandidate(name, float64(len(names)-i)))
	}

	ranked, stats := engine.CombineAndRank(local, models.ExternalResult{}, "zzz", 3)

	assert.Len(t, ranked, 3)
	assert.Equal(t, 5, stats.Total, "stats count before truncation")
	assert.Equal(t, "Uno", ranked[0].DisplayName)
}

func TestStableOrderOnEqualScores(t *testing.T) {
	engine := NewEngine()

	local := []models.Candidate{
		localCandidate("Alpha", 4),
		localCandidate("Beta", 4),
		localCandidate("Gamma", 4),
	}

	ranked, _ := engine.CombineAndRank(local, models.ExternalResult{}, "zzz", 0)

	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"},
		[]string{ranked[0].DisplayName, ranked[1].DisplayName, ranked[2].DisplayName})
}

func TestEmptyInputs(t *testing.T) {
	engine := NewEngine()

	ranked, stats := engine.CombineAndRank(nil, models.ExternalResult{}, "ruleta", 0)

	assert.Empty(t, ranked)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.MaxRelevance)
}

func TestFoldName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips punctuation", "Blackjack (casino game)", "blackjackcasinogame"},
		{"folds accents", "Póker", "poker"},
		{"truncates", "a very long display name indeed", "averylongdisplayname"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FoldName(tt.input))
		})
	}
}

func TestRemoteDescriptionBonusApplied(t *testing.T) {
	engine := NewEngine()

	plain := remoteCandidate("Uno", 2)
	described := remoteCandidate("Dos", 2)
	described.Abstract = "un juego de dados muy popular"

	external := models.ExternalResult{English: []models.Candidate{plain, described}, Total: 2}

	ranked, _ := engine.CombineAndRank(nil, external, "dados", 0)

	assert.Equal(t, "Dos", ranked[0].DisplayName)
}
