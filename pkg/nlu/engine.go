// Package nlu implements the natural-language query understanding layer:
// normalization, Spanish/English detection, regex-cascade intent
// classification, domain keyword expansion and canned contextual answers
// for the casino games domain.
package nlu

import (
	"sort"
	"strings"

	"github.com/ludokb/ludokb-go/utils"
)

// Result is the outcome of processing one query
type Result struct {
	Normalized       string   `json:"normalized"`
	Language         string   `json:"language"`
	Tokens           []string `json:"tokens"`
	Intent           string   `json:"intent"`
	Keywords         []string `json:"keywords,omitempty"`
	SearchTerms      []string `json:"search_terms"`
	Game             string   `json:"game,omitempty"`
	SubPattern       string   `json:"sub_pattern,omitempty"`
	ContextualAnswer string   `json:"contextual_answer,omitempty"`
}

// Engine processes free-text queries against the static knowledge tables
type Engine struct {
	table  *KnowledgeTable
	logger *utils.Logger
}

// NewEngine parses the embedded knowledge tables and returns a ready
// engine. The only failure mode is a broken embedded table, which is a
// build defect rather than a runtime condition.
func NewEngine() (*Engine, error) {
	table, err := loadKnowledgeTable()
	if err != nil {
		return nil, err
	}
	return &Engine{table: table, logger: utils.GetLogger()}, nil
}

// minTokenLength is the threshold below which content tokens are ignored
const minTokenLength = 3

// ProcessQuery runs the full understanding pipeline. It never fails past
// this boundary: any internal panic is absorbed and a minimal fallback
// result is returned, because downstream search must always receive some
// search terms.
func (e *Engine) ProcessQuery(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("query understanding recovered from internal error",
				utils.String("query", text),
				utils.Component("nlu"))
			result = fallbackResult(text)
		}
	}()
	return e.process(text)
}

func (e *Engine) process(text string) Result {
	normalized := Normalize(text)
	tokens := Tokenize(normalized)
	language := DetectLanguage(tokens)

	keywords := e.table.matchKeywords(normalized)
	sort.Strings(keywords)
	synonyms := e.table.expandSynonyms(keywords)

	intent := ClassifyIntent(normalized)

	game, hasGame := e.table.detectGame(normalized)
	var subPattern, answer string
	if hasGame {
		subPattern = e.table.detectSubPattern(normalized, game)
		if intent == IntentSearch && subPattern != "" {
			intent = IntentSpecific
		}
		answer = e.table.answerFor(game, subPattern, intent, language)
	}

	return Result{
		Normalized:       normalized,
		Language:         language,
		Tokens:           tokens,
		Intent:           intent,
		Keywords:         keywords,
		SearchTerms:      e.assembleSearchTerms(normalized, tokens, language, keywords, synonyms),
		Game:             game,
		SubPattern:       subPattern,
		ContextualAnswer: answer,
	}
}

// assembleSearchTerms unions the domain keywords, their synonym closure
// and the stemmed content tokens (longer than minTokenLength, stop words
// excluded). Order is keywords first, then synonyms, then tokens, with
// duplicates folded.
func (e *Engine) assembleSearchTerms(normalized string, tokens []string, language string, keywords, synonyms []string) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	for _, k := range keywords {
		add(k)
	}
	for _, s := range synonyms {
		add(s)
	}
	for _, tok := range tokens {
		if len(tok) <= minTokenLength || isStopword(language, tok) {
			continue
		}
		add(stemToken(language, tok))
	}
	if len(terms) == 0 && normalized != "" {
		terms = append(terms, normalized)
	}
	return terms
}

// ExtractSearchTerms is the lightweight entry point used by the triple
// store adapter: same pipeline, terms only.
func (e *Engine) ExtractSearchTerms(text string) []string {
	return e.ProcessQuery(text).SearchTerms
}

// fallbackResult is the minimal result returned when processing fails
func fallbackResult(text string) Result {
	return Result{
		Normalized:  strings.ToLower(text),
		Language:    "es",
		Tokens:      []string{text},
		Intent:      IntentSearch,
		SearchTerms: []string{text},
	}
}
