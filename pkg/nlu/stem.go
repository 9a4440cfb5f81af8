package nlu

import (
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/spanish"
)

// stemToken reduces a token to its snowball stem for the given language.
// Stems are usually prefixes of the full word, which keeps them usable as
// substring search terms against ontology literals.
func stemToken(lang, token string) string {
	env := snowballstem.NewEnv(token)
	if lang == "en" {
		english.Stem(env)
	} else {
		spanish.Stem(env)
	}
	if stemmed := env.Current(); stemmed != "" {
		return stemmed
	}
	return token
}
