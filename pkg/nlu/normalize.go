package nlu

import "strings"

// accentReplacer maps accented characters to their base form. A fixed
// substitution table keeps normalization deterministic across platforms
// (no locale-dependent collation involved).
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u",
	"ñ", "n", "ç", "c",
	"Á", "a", "À", "a", "Ä", "a", "Â", "a",
	"É", "e", "È", "e", "Ë", "e", "Ê", "e",
	"Í", "i", "Ì", "i", "Ï", "i", "Î", "i",
	"Ó", "o", "Ò", "o", "Ö", "o", "Ô", "o",
	"Ú", "u", "Ù", "u", "Ü", "u", "Û", "u",
	"Ñ", "n", "Ç", "c",
	"¿", "", "?", "", "¡", "", "!", "",
)

// Normalize lowercases, trims, strips accents and question/exclamation
// marks, and collapses runs of whitespace to single spaces.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = accentReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits normalized text into word tokens, dropping punctuation
// that survived normalization.
func Tokenize(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
