package nlu

var stopwordsES = map[string]bool{
	"a": true, "al": true, "ante": true, "bajo": true, "como": true,
	"con": true, "contra": true, "cual": true, "cuales": true,
	"cuando": true, "cuanto": true, "de": true, "del": true, "desde": true,
	"donde": true, "el": true, "ella": true, "ellas": true, "ellos": true,
	"en": true, "entre": true, "era": true, "eres": true, "es": true,
	"esa": true, "ese": true, "esta": true, "este": true, "esto": true,
	"hay": true, "la": true, "las": true, "le": true, "les": true,
	"lo": true, "los": true, "mas": true, "me": true, "mi": true,
	"muy": true, "no": true, "nos": true, "o": true, "para": true,
	"pero": true, "por": true, "porque": true, "que": true, "se": true,
	"ser": true, "si": true, "sin": true, "sobre": true, "son": true,
	"su": true, "sus": true, "te": true, "tiene": true, "tienen": true,
	"tu": true, "un": true, "una": true, "unas": true, "unos": true,
	"y": true, "ya": true, "yo": true,
}

var stopwordsEN = map[string]bool{
	"a": true, "about": true, "an": true, "and": true, "are": true,
	"as": true, "at": true, "be": true, "but": true, "by": true,
	"can": true, "do": true, "does": true, "for": true, "from": true,
	"has": true, "have": true, "how": true, "i": true, "if": true,
	"in": true, "is": true, "it": true, "me": true, "my": true,
	"no": true, "not": true, "of": true, "on": true, "or": true,
	"so": true, "that": true, "the": true, "there": true, "these": true,
	"this": true, "to": true, "was": true, "we": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "why": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
}

// isStopword reports whether a token is a stop word for the detected
// language. Unknown languages fall back to the Spanish list.
func isStopword(lang, token string) bool {
	if lang == "en" {
		return stopwordsEN[token]
	}
	return stopwordsES[token]
}
