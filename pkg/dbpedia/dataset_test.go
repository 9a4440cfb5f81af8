package dbpedia

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludokb/ludokb-go/pkg/models"
)

func TestDatasetSearch(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)

	english, spanish := dataset.Search("ruleta")
	require.Len(t, english, 1)
	require.Len(t, spanish, 1)
	assert.Equal(t, "http://dbpedia.org/resource/Roulette", english[0].URI)
	assert.Equal(t, "en", english[0].Language)
	assert.Equal(t, "es", spanish[0].Language)
	assert.NotEmpty(t, spanish[0].Abstract)
	assert.Greater(t, english[0].Relevance, 0.0)
}

func TestDatasetSearchBidirectionalContainment(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)

	// Term contains the name
	english, _ := dataset.Search("juego de ruleta europea")
	assert.NotEmpty(t, english)

	// Name contains the term ("juego de dados" vs "dados")
	_, spanish := dataset.Search("dados")
	assert.NotEmpty(t, spanish)

	english, spanish = dataset.Search("ajedrez")
	assert.Empty(t, english)
	assert.Empty(t, spanish)
}

func TestDatasetSearchEmptyTerm(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)

	english, spanish := dataset.Search("   ")
	assert.Empty(t, english)
	assert.Empty(t, spanish)
}

func TestDatasetDetail(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)

	uri := "http://dbpedia.org/resource/Blackjack"
	entry, ok := dataset.Detail(uri)
	require.True(t, ok)
	assert.Equal(t, uri, entry.URI)

	entry, ok = dataset.Detail(models.CandidateID(uri))
	require.True(t, ok)
	assert.Equal(t, uri, entry.URI)

	_, ok = dataset.Detail("unknown")
	assert.False(t, ok)
}

func TestDatasetReloadFromFile(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)
	originalLen := dataset.Len()

	path := filepath.Join(t.TempDir(), "dataset.json")
	custom := `{"entries":[{"names":["parchis"],"uri":"http://dbpedia.org/resource/Parchis","label_en":"Parcheesi","label_es":"Parchís","abstract_en":"a board game","abstract_es":"un juego de mesa"}]}`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, dataset.Reload(path))
	assert.Equal(t, 1, dataset.Len())

	english, _ := dataset.Search("parchis")
	require.Len(t, english, 1)
	assert.Equal(t, "Parcheesi", english[0].DisplayName)

	// Empty path restores the embedded snapshot
	require.NoError(t, dataset.Reload(""))
	assert.Equal(t, originalLen, dataset.Len())
}

func TestDatasetReloadRejectsBrokenFile(t *testing.T) {
	dataset, err := NewDataset()
	require.NoError(t, err)
	originalLen := dataset.Len()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	assert.Error(t, dataset.Reload(path))
	assert.Equal(t, originalLen, dataset.Len(), "failed reload keeps the previous entries")
}
