package triplestore

import (
	"sort"
	"strings"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/pkg/nlu"
	"github.com/ludokb/ludokb-go/utils"
)

// TermExtractor turns free text into search terms. The NLU engine
// satisfies this; the adapter only depends on the narrow surface.
type TermExtractor interface {
	ExtractSearchTerms(text string) []string
}

// ClassInfo describes one ontology class
type ClassInfo struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// PropertyInfo describes one predicate used in the graph
type PropertyInfo struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// GraphStats summarizes the loaded ontology
type GraphStats struct {
	Loaded        bool `json:"loaded"`
	TripleCount   int  `json:"triple_count"`
	ClassCount    int  `json:"class_count"`
	InstanceCount int  `json:"instance_count"`
	PropertyCount int  `json:"property_count"`
}

// Relevance increments for text search hits
const (
	nameHitScore    = 3.0
	literalHitScore = 2.0
	maxLocalResults = 10
)

// descriptiveFragments whitelists the predicates whose literals are worth
// scanning during text search, by local-name heuristic.
var descriptiveFragments = []string{
	"descripcion", "description", "regla", "rule", "objetivo", "objective",
	"estrategia", "strategy", "probabilidad", "probability", "pago",
	"payout", "ventaja", "edge", "comment", "comentario", "label", "nombre",
}

// scaffoldingFragments excludes generic RDF/OWL machinery subjects from
// search results.
var scaffoldingFragments = []string{
	"class", "property", "ontology", "restriction", "datatype",
	"annotation", "thing", "nodeid",
}

// Adapter is the typed query interface over the ontology graph
type Adapter struct {
	holder    *Holder
	namespace string
	extractor TermExtractor
	logger    *utils.Logger
}

// NewAdapter creates an adapter bound to a graph holder. namespace is the
// ontology's base URI used to resolve bare class names.
func NewAdapter(holder *Holder, namespace string, extractor TermExtractor) *Adapter {
	return &Adapter{
		holder:    holder,
		namespace: namespace,
		extractor: extractor,
		logger:    utils.GetLogger(),
	}
}

// GetClasses returns all subjects typed owl:Class
func (a *Adapter) GetClasses() ([]ClassInfo, error) {
	g, err := a.holder.Graph()
	if err != nil {
		return nil, err
	}
	subjects := g.SubjectsWithType(OWLClass)
	classes := make([]ClassInfo, 0, len(subjects))
	for _, s := range subjects {
		classes = append(classes, ClassInfo{URI: s, Name: LocalName(s)})
	}
	return classes, nil
}

// GetInstancesOfClass resolves className against the ontology namespace
// and returns every subject typed with it, including the full property
// map of each instance.
func (a *Adapter) GetInstancesOfClass(className string) ([]models.Candidate, error) {
	g, err := a.holder.Graph()
	if err != nil {
		return nil, err
	}

	classURI := className
	if !strings.Contains(className, "://") {
		classURI = a.namespace + className
		if len(g.SubjectsWithType(classURI)) == 0 {
			classURI = a.namespace + capitalize(className)
		}
	}

	subjects := g.SubjectsWithType(classURI)
	candidates := make([]models.Candidate, 0, len(subjects))
	for _, s := range subjects {
		props := propertyMap(g, s)
		candidates = append(candidates, models.NewLocalCandidate(s, displayName(s, props), props, 1))
	}
	return candidates, nil
}

// SearchByText scans the graph for subjects matching the query's search
// terms, either in their local name or in the literals of descriptive
// predicates. Relevance accumulates per additional term and predicate
// hit; results are sorted descending and capped at maxLocalResults.
//
// Empty queries are rejected by the HTTP layer, not here.
func (a *Adapter) SearchByText(rawQuery string) ([]models.Candidate, error) {
	g, err := a.holder.Graph()
	if err != nil {
		return nil, err
	}

	terms := a.extractor.ExtractSearchTerms(rawQuery)
	if len(terms) == 0 {
		return nil, nil
	}

	type scored struct {
		subject string
		score   float64
	}
	var hits []scored
	for _, subject := range g.Subjects() {
		name := nlu.Normalize(LocalName(subject))
		if isScaffolding(name) {
			continue
		}
		var score float64
		for _, term := range terms {
			if strings.Contains(name, term) {
				score += nameHitScore
			}
			for _, t := range g.TriplesFor(subject) {
				if !t.ObjectIsLiteral || !isDescriptive(LocalName(t.Predicate)) {
					continue
				}
				if strings.Contains(nlu.Normalize(t.Object), term) {
					score += literalHitScore
				}
			}
		}
		if score > 0 {
			hits = append(hits, scored{subject: subject, score: score})
		}
	}

	// Stable sort keeps graph order for equal scores
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > maxLocalResults {
		hits = hits[:maxLocalResults]
	}

	candidates := make([]models.Candidate, 0, len(hits))
	for _, h := range hits {
		props := propertyMap(g, h.subject)
		candidates = append(candidates, models.NewLocalCandidate(h.subject, displayName(h.subject, props), props, h.score))
	}
	a.logger.Debug("local search completed",
		utils.String("query", rawQuery),
		utils.Int("terms", len(terms)),
		utils.Int("results", len(candidates)),
		utils.Component("triplestore"))
	return candidates, nil
}

// GetProperties returns every distinct predicate in the graph
func (a *Adapter) GetProperties() ([]PropertyInfo, error) {
	g, err := a.holder.Graph()
	if err != nil {
		return nil, err
	}
	preds := g.Predicates()
	props := make([]PropertyInfo, 0, len(preds))
	for _, p := range preds {
		props = append(props, PropertyInfo{URI: p, Name: LocalName(p)})
	}
	return props, nil
}

// Stats returns summary counts for the loaded graph. Unlike the query
// operations it does not fail before load; it reports loaded=false.
func (a *Adapter) Stats() GraphStats {
	g, err := a.holder.Graph()
	if err != nil {
		return GraphStats{Loaded: false}
	}
	classes := g.SubjectsWithType(OWLClass)
	classSet := make(map[string]bool, len(classes))
	for _, c := range classes {
		classSet[c] = true
	}
	instances := 0
	for _, s := range g.Subjects() {
		if !classSet[s] {
			instances++
		}
	}
	return GraphStats{
		Loaded:        true,
		TripleCount:   g.Len(),
		ClassCount:    len(classes),
		InstanceCount: instances,
		PropertyCount: len(g.Predicates()),
	}
}

// propertyMap builds the predicate-local-name → value map for a subject,
// excluding rdf:type. Repeated predicates fold into string slices.
func propertyMap(g *Graph, subject string) map[string]any {
	props := make(map[string]any)
	for _, t := range g.TriplesFor(subject) {
		if t.Predicate == RDFType {
			continue
		}
		key := LocalName(t.Predicate)
		switch existing := props[key].(type) {
		case nil:
			props[key] = t.Object
		case string:
			props[key] = []string{existing, t.Object}
		case []string:
			props[key] = append(existing, t.Object)
		}
	}
	return props
}

// displayName prefers a label-like property over the URI local name
func displayName(subject string, props map[string]any) string {
	for _, key := range []string{"label", "nombre", "name"} {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			if ss, ok := v.([]string); ok && len(ss) > 0 {
				return ss[0]
			}
		}
	}
	return strings.ReplaceAll(LocalName(subject), "_", " ")
}

func isDescriptive(predicateName string) bool {
	name := strings.ToLower(predicateName)
	for _, frag := range descriptiveFragments {
		if strings.Contains(name, frag) {
			return true
		}
	}
	return false
}

func isScaffolding(subjectName string) bool {
	for _, frag := range scaffoldingFragments {
		if strings.Contains(subjectName, frag) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
