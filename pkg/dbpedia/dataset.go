package dbpedia

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/pkg/nlu"
)

//go:embed offline_dataset.json
var embeddedDataset []byte

// DatasetEntry is one bundled knowledge-base record with both language
// renditions of its label and abstract.
type DatasetEntry struct {
	Names      []string `json:"names"`
	URI        string   `json:"uri"`
	LabelEN    string   `json:"label_en"`
	LabelES    string   `json:"label_es"`
	AbstractEN string   `json:"abstract_en"`
	AbstractES string   `json:"abstract_es"`
	Thumbnail  string   `json:"thumbnail"`
	Categories []string `json:"categories"`
}

// Dataset is the bundled offline snapshot of known DBpedia entries. It is
// the first stage of the fallback chain: a hit here answers without any
// cache or network access. Reload replaces the whole entry set.
type Dataset struct {
	mu      sync.RWMutex
	entries []DatasetEntry
}

// NewDataset parses the embedded snapshot
func NewDataset() (*Dataset, error) {
	d := &Dataset{}
	if err := d.load(embeddedDataset); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dataset) load(data []byte) error {
	var parsed struct {
		Entries []DatasetEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse offline dataset: %w", err)
	}
	if len(parsed.Entries) == 0 {
		return fmt.Errorf("offline dataset contains no entries")
	}
	d.mu.Lock()
	d.entries = parsed.Entries
	d.mu.Unlock()
	return nil
}

// Reload re-reads the dataset, from path when given, otherwise from the
// embedded snapshot.
func (d *Dataset) Reload(path string) error {
	if path == "" {
		return d.load(embeddedDataset)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}
	return d.load(data)
}

// Len returns the number of bundled entries
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Search returns the English and Spanish candidates of every entry whose
// name list matches the term (either direction of containment, so both
// "ruleta" vs "ruleta europea" and "juego de ruleta" vs "ruleta" hit).
func (d *Dataset) Search(term string) ([]models.Candidate, []models.Candidate) {
	normalized := nlu.Normalize(term)
	if normalized == "" {
		return nil, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var english, spanish []models.Candidate
	for _, entry := range d.entries {
		if !entry.matches(normalized) {
			continue
		}
		english = append(english, entry.candidate("en"))
		spanish = append(spanish, entry.candidate("es"))
	}
	return english, spanish
}

// Detail finds an entry by candidate ID or URI
func (d *Dataset) Detail(idOrURI string) (*DatasetEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.entries {
		e := &d.entries[i]
		if e.URI == idOrURI || models.CandidateID(e.URI) == idOrURI {
			return e, true
		}
	}
	return nil, false
}

// Candidate builds the candidate for one language rendition of an entry
func (e *DatasetEntry) candidate(lang string) models.Candidate {
	label, abstract := e.LabelEN, e.AbstractEN
	if lang == "es" {
		label, abstract = e.LabelES, e.AbstractES
	}
	cand := models.NewRemoteCandidate(e.URI, label, lang)
	cand.Abstract = abstract
	cand.Thumbnail = e.Thumbnail
	cand.Categories = e.Categories
	cand.Relevance = richnessScore(cand)
	return cand
}

// Candidate is the exported form used by the detail endpoint
func (e *DatasetEntry) Candidate(lang string) models.Candidate {
	return e.candidate(lang)
}

func (e *DatasetEntry) matches(normalized string) bool {
	for _, name := range e.Names {
		n := nlu.Normalize(name)
		if strings.Contains(normalized, n) || strings.Contains(n, normalized) {
			return true
		}
	}
	return false
}
