package triplestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"
)

// LoadGraph parses an ontology file into a new Graph. Turtle and
// N-Triples are supported, chosen by file extension (.nt is N-Triples,
// anything else parses as Turtle). The returned graph is fully built
// before this function returns, so a Holder.Swap of the result satisfies
// the atomic-replace requirement of reload.
func LoadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology file: %w", err)
	}
	defer f.Close()

	format := rdf.Turtle
	if strings.EqualFold(filepath.Ext(path), ".nt") {
		format = rdf.NTriples
	}

	dec := rdf.NewTripleDecoder(f, format)
	parsed, err := dec.DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ontology %s: %w", filepath.Base(path), err)
	}

	triples := make([]Triple, 0, len(parsed))
	for _, t := range parsed {
		triples = append(triples, Triple{
			Subject:         t.Subj.String(),
			Predicate:       t.Pred.String(),
			Object:          t.Obj.String(),
			ObjectIsLiteral: t.Obj.Type() == rdf.TermLiteral,
		})
	}
	if len(triples) == 0 {
		return nil, fmt.Errorf("ontology %s contains no triples", filepath.Base(path))
	}
	return NewGraph(triples), nil
}
