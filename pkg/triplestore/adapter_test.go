package triplestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludokb/ludokb-go/pkg/models"
)

// staticExtractor stands in for the NLU engine in adapter tests
type staticExtractor struct {
	terms []string
}

func (s staticExtractor) ExtractSearchTerms(string) []string {
	return s.terms
}

func loadedAdapter(t *testing.T, terms ...string) *Adapter {
	t.Helper()
	holder := NewHolder()
	holder.Swap(testGraph())
	return NewAdapter(holder, testNS, staticExtractor{terms: terms})
}

func TestAdapterNotLoaded(t *testing.T) {
	adapter := NewAdapter(NewHolder(), testNS, staticExtractor{})

	_, err := adapter.GetClasses()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = adapter.SearchByText("ruleta")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = adapter.GetInstancesOfClass("JuegoCasino")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = adapter.GetProperties()
	assert.ErrorIs(t, err, ErrNotLoaded)

	stats := adapter.Stats()
	assert.False(t, stats.Loaded)
}

func TestGetClasses(t *testing.T) {
	adapter := loadedAdapter(t)

	classes, err := adapter.GetClasses()
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "JuegoCasino", classes[0].Name)
	assert.Equal(t, testNS+"JuegoCasino", classes[0].URI)
}

func TestGetInstancesOfClass(t *testing.T) {
	adapter := loadedAdapter(t)

	instances, err := adapter.GetInstancesOfClass("JuegoCasino")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	names := []string{instances[0].DisplayName, instances[1].DisplayName}
	assert.ElementsMatch(t, []string{"Ruleta", "Blackjack"}, names)
	for _, inst := range instances {
		assert.Equal(t, models.OriginLocal, inst.Origin)
		assert.NotContains(t, inst.Properties, "type", "rdf:type stays out of the property map")
		assert.Contains(t, inst.Properties, "descripcion")
	}
}

func TestGetInstancesResolvesLowercaseClassName(t *testing.T) {
	adapter := loadedAdapter(t)

	instances, err := adapter.GetInstancesOfClass("juegoCasino")
	require.NoError(t, err)
	assert.Len(t, instances, 2)
}

func TestGetInstancesUnknownClass(t *testing.T) {
	adapter := loadedAdapter(t)

	instances, err := adapter.GetInstancesOfClass("Inexistente")
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestSearchByTextNameAndLabelHit(t *testing.T) {
	adapter := loadedAdapter(t, "ruleta")

	results, err := adapter.SearchByText("ruleta")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ruleta", results[0].DisplayName)
	// Name hit plus the label literal hit
	assert.Equal(t, nameHitScore+literalHitScore, results[0].Relevance)
}

func TestSearchByTextDescriptiveLiteralHit(t *testing.T) {
	adapter := loadedAdapter(t, "rojo")

	results, err := adapter.SearchByText("rojo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ruleta", results[0].DisplayName)
	// descripcion and probabilidad both mention the term
	assert.Equal(t, 2*literalHitScore, results[0].Relevance)
}

func TestSearchByTextMultipleTermsAccumulate(t *testing.T) {
	adapter := loadedAdapter(t, "ruleta", "rojo")

	results, err := adapter.SearchByText("rojo ruleta")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Greater(t, results[0].Relevance, nameHitScore+literalHitScore)
}

func TestSearchByTextRanking(t *testing.T) {
	adapter := loadedAdapter(t, "juego")

	// Both instances describe themselves as "juego"; the class subject
	// also matches by name but carries no descriptive literals.
	results, err := adapter.SearchByText("juego")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Relevance, results[i].Relevance)
	}
}

func TestSearchByTextNoTerms(t *testing.T) {
	adapter := loadedAdapter(t)

	results, err := adapter.SearchByText("zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByTextCapsResults(t *testing.T) {
	triples := []Triple{}
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		subject := testNS + "Juego" + name
		triples = append(triples,
			Triple{Subject: subject, Predicate: testNS + "descripcion", Object: "juego de azar", ObjectIsLiteral: true})
	}
	holder := NewHolder()
	holder.Swap(NewGraph(triples))
	adapter := NewAdapter(holder, testNS, staticExtractor{terms: []string{"azar"}})

	results, err := adapter.SearchByText("azar")
	require.NoError(t, err)
	assert.Len(t, results, maxLocalResults)
}

func TestSearchExcludesScaffoldingSubjects(t *testing.T) {
	holder := NewHolder()
	holder.Swap(NewGraph([]Triple{
		{Subject: testNS + "RuletaClass", Predicate: testNS + "descripcion", Object: "ruleta", ObjectIsLiteral: true},
		{Subject: testNS + "Ruleta", Predicate: testNS + "descripcion", Object: "ruleta", ObjectIsLiteral: true},
	}))
	adapter := NewAdapter(holder, testNS, staticExtractor{terms: []string{"ruleta"}})

	results, err := adapter.SearchByText("ruleta")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, testNS+"Ruleta", results[0].URI)
}

func TestStats(t *testing.T) {
	adapter := loadedAdapter(t)

	stats := adapter.Stats()
	assert.True(t, stats.Loaded)
	assert.Equal(t, 8, stats.TripleCount)
	assert.Equal(t, 1, stats.ClassCount)
	assert.Equal(t, 2, stats.InstanceCount)
	assert.Equal(t, 4, stats.PropertyCount)
}

func TestPropertyMapFoldsRepeatedPredicates(t *testing.T) {
	g := NewGraph([]Triple{
		{Subject: "s", Predicate: testNS + "alias", Object: "uno", ObjectIsLiteral: true},
		{Subject: "s", Predicate: testNS + "alias", Object: "dos", ObjectIsLiteral: true},
		{Subject: "s", Predicate: testNS + "alias", Object: "tres", ObjectIsLiteral: true},
	})

	props := propertyMap(g, "s")
	assert.Equal(t, []string{"uno", "dos", "tres"}, props["alias"])
}
