package triplestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "http://example.org/casino#"

func testGraph() *Graph {
	return NewGraph([]Triple{
		{Subject: testNS + "JuegoCasino", Predicate: RDFType, Object: OWLClass},
		{Subject: testNS + "Ruleta", Predicate: RDFType, Object: testNS + "JuegoCasino"},
		{Subject: testNS + "Ruleta", Predicate: testNS + "label", Object: "Ruleta", ObjectIsLiteral: true},
		{Subject: testNS + "Ruleta", Predicate: testNS + "descripcion", Object: "Juego de azar con casillas de color rojo y negro.", ObjectIsLiteral: true},
		{Subject: testNS + "Ruleta", Predicate: testNS + "probabilidad", Object: "La probabilidad de rojo es del 48.65%.", ObjectIsLiteral: true},
		{Subject: testNS + "Blackjack", Predicate: RDFType, Object: testNS + "JuegoCasino"},
		{Subject: testNS + "Blackjack", Predicate: testNS + "label", Object: "Blackjack", ObjectIsLiteral: true},
		{Subject: testNS + "Blackjack", Predicate: testNS + "descripcion", Object: "Juego de cartas contra la banca.", ObjectIsLiteral: true},
	})
}

func TestGraphIndexes(t *testing.T) {
	g := testGraph()

	assert.Equal(t, 8, g.Len())
	assert.Len(t, g.TriplesFor(testNS+"Ruleta"), 4)
	assert.Empty(t, g.TriplesFor(testNS+"Nada"))

	subjects := g.Subjects()
	assert.Equal(t, []string{testNS + "JuegoCasino", testNS + "Ruleta", testNS + "Blackjack"}, subjects)

	classes := g.SubjectsWithType(OWLClass)
	assert.Equal(t, []string{testNS + "JuegoCasino"}, classes)

	instances := g.SubjectsWithType(testNS + "JuegoCasino")
	assert.ElementsMatch(t, []string{testNS + "Ruleta", testNS + "Blackjack"}, instances)
}

func TestPredicatesDeduped(t *testing.T) {
	g := testGraph()

	preds := g.Predicates()
	assert.Len(t, preds, 4)
	assert.Contains(t, preds, RDFType)
	assert.Contains(t, preds, testNS+"descripcion")
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"http://example.org/casino#Ruleta", "Ruleta"},
		{"http://dbpedia.org/resource/Roulette", "Roulette"},
		{"Ruleta", "Ruleta"},
		{"http://example.org/casino#", "http://example.org/casino#"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LocalName(tt.uri), tt.uri)
	}
}

func TestHolderBeforeLoad(t *testing.T) {
	h := NewHolder()

	assert.False(t, h.Loaded())
	_, err := h.Graph()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder()
	first := NewGraph([]Triple{{Subject: "a", Predicate: "b", Object: "c"}})
	second := testGraph()

	h.Swap(first)
	g, err := h.Graph()
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())

	h.Swap(second)
	g, err = h.Graph()
	require.NoError(t, err)
	assert.Equal(t, 8, g.Len())
	assert.True(t, h.Loaded())
}
