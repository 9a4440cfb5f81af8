package triplestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTurtle = `@prefix : <http://example.org/casino#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .

:Ruleta rdf:type :JuegoCasino ;
    :descripcion "Juego de azar con casillas rojas y negras." .
`

func writeOntology(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGraphTurtle(t *testing.T) {
	path := writeOntology(t, t.TempDir(), "casino.ttl", sampleTurtle)

	g, err := LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	triples := g.TriplesFor("http://example.org/casino#Ruleta")
	require.Len(t, triples, 2)

	var sawLiteral bool
	for _, tr := range triples {
		if tr.ObjectIsLiteral {
			sawLiteral = true
			assert.Contains(t, tr.Object, "rojas")
		}
	}
	assert.True(t, sawLiteral)
}

func TestLoadGraphNTriples(t *testing.T) {
	nt := "<http://example.org/casino#Ruleta> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/casino#JuegoCasino> .\n"
	path := writeOntology(t, t.TempDir(), "casino.nt", nt)

	g, err := LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestLoadGraphMissingFile(t *testing.T) {
	_, err := LoadGraph(filepath.Join(t.TempDir(), "nope.ttl"))
	assert.Error(t, err)
}

func TestLoadGraphEmptyFile(t *testing.T) {
	path := writeOntology(t, t.TempDir(), "empty.ttl", "")

	_, err := LoadGraph(path)
	assert.Error(t, err)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeOntology(t, dir, "casino.ttl", sampleTurtle)

	holder := NewHolder()
	g, err := LoadGraph(path)
	require.NoError(t, err)
	holder.Swap(g)

	watcher, err := WatchFile(path, holder)
	require.NoError(t, err)
	defer watcher.Close()

	grown := sampleTurtle + `
:Blackjack rdf:type :JuegoCasino ;
    :descripcion "Juego de cartas contra la banca." .
`
	require.NoError(t, os.WriteFile(path, []byte(grown), 0o644))

	require.Eventually(t, func() bool {
		current, err := holder.Graph()
		return err == nil && current.Len() == 4
	}, 5*time.Second, 50*time.Millisecond, "watcher should swap in the grown graph")
}

func TestWatcherKeepsGraphOnParseFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeOntology(t, dir, "casino.ttl", sampleTurtle)

	holder := NewHolder()
	g, err := LoadGraph(path)
	require.NoError(t, err)
	holder.Swap(g)

	watcher, err := WatchFile(path, holder)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("@prefix : <broken"), 0o644))

	// Give the debounce window time to fire, then confirm nothing changed
	time.Sleep(2 * time.Second)
	current, err := holder.Graph()
	require.NoError(t, err)
	assert.Equal(t, 2, current.Len())
}
