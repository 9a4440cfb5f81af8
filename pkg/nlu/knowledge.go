package nlu

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

// KnowledgeTable holds the static domain tables: canonical keywords with
// their synonyms, per-game canned answers keyed by intent, and specific
// sub-patterns with their own answer texts. The tables are deliberately
// static configuration (embedded YAML), not a dynamic knowledge base.
type KnowledgeTable struct {
	Keywords    map[string][]string   `yaml:"keywords"`
	Games       map[string]GameEntry  `yaml:"games"`
	SubPatterns map[string]SubPattern `yaml:"subpatterns"`
}

// GameEntry describes one known game: the aliases that identify it in
// query text and canned answers per intent and language.
type GameEntry struct {
	Aliases []string                     `yaml:"aliases"`
	Answers map[string]map[string]string `yaml:"answers"`
}

// SubPattern is a canonical sub-query ("red in roulette", "insurance in
// blackjack") recognized by word-set triggers. All words of one trigger
// must appear in the normalized text for the pattern to fire.
type SubPattern struct {
	Game     string            `yaml:"game"`
	Triggers [][]string        `yaml:"triggers"`
	Answers  map[string]string `yaml:"answers"`
}

func loadKnowledgeTable() (*KnowledgeTable, error) {
	var kt KnowledgeTable
	if err := yaml.Unmarshal(knowledgeYAML, &kt); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge table: %w", err)
	}
	if len(kt.Keywords) == 0 || len(kt.Games) == 0 {
		return nil, fmt.Errorf("knowledge table is incomplete")
	}
	return &kt, nil
}

// matchKeywords returns the canonical domain terms whose name or any
// synonym occurs in the normalized text. Order is deterministic only per
// text scan, so callers sort when order matters for output.
func (kt *KnowledgeTable) matchKeywords(normalized string) []string {
	var matched []string
	for canonical, synonyms := range kt.Keywords {
		if containsWordOrPhrase(normalized, canonical) {
			matched = append(matched, canonical)
			continue
		}
		for _, syn := range synonyms {
			if containsWordOrPhrase(normalized, syn) {
				matched = append(matched, canonical)
				break
			}
		}
	}
	return matched
}

// expandSynonyms returns the one-level synonym closure of the matched
// canonical terms. Expansion is not transitive beyond the declared lists.
func (kt *KnowledgeTable) expandSynonyms(canonicals []string) []string {
	var out []string
	for _, c := range canonicals {
		out = append(out, kt.Keywords[c]...)
	}
	return out
}

// detectGame identifies a known game mentioned by name or alias
func (kt *KnowledgeTable) detectGame(normalized string) (string, bool) {
	for key, entry := range kt.Games {
		if containsWordOrPhrase(normalized, key) {
			return key, true
		}
		for _, alias := range entry.Aliases {
			if containsWordOrPhrase(normalized, alias) {
				return key, true
			}
		}
	}
	return "", false
}

// detectSubPattern checks the specific sub-query triggers for the given
// game. The first sub-pattern whose trigger word-set is fully present
// wins; patterns belonging to other games never fire.
func (kt *KnowledgeTable) detectSubPattern(normalized, game string) string {
	// Sorted iteration keeps the winner deterministic when a query could
	// trigger more than one pattern.
	names := make([]string, 0, len(kt.SubPatterns))
	for name := range kt.SubPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sp := kt.SubPatterns[name]
		if sp.Game != game {
			continue
		}
		for _, trigger := range sp.Triggers {
			if allWordsPresent(normalized, trigger) {
				return name
			}
		}
	}
	return ""
}

// answerFor assembles the contextual answer for a recognized game. The
// specific sub-pattern text takes precedence over the per-intent canned
// answer; an empty string means no answer is available, which callers
// must treat as a normal outcome.
func (kt *KnowledgeTable) answerFor(game, subPattern, intent, lang string) string {
	if subPattern != "" {
		if sp, ok := kt.SubPatterns[subPattern]; ok {
			if text, ok := sp.Answers[lang]; ok && text != "" {
				return text
			}
			return sp.Answers["es"]
		}
	}
	entry, ok := kt.Games[game]
	if !ok {
		return ""
	}
	byLang, ok := entry.Answers[intent]
	if !ok {
		return ""
	}
	if text, ok := byLang[lang]; ok && text != "" {
		return text
	}
	return byLang["es"]
}

// containsWordOrPhrase reports whether the phrase appears in the text on
// word boundaries. Single words must match a whole token; multi-word
// phrases match as substrings padded with spaces.
func containsWordOrPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + text + " "
	return strings.Contains(padded, " "+phrase+" ")
}

func allWordsPresent(text string, words []string) bool {
	for _, w := range words {
		if !containsWordOrPhrase(text, w) {
			return false
		}
	}
	return len(words) > 0
}
