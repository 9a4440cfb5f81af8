package nlu

// Language detection is a bag-of-indicator-words vote between Spanish and
// English marker lists. This is a heuristic, not a statistical classifier:
// it is approximate by design and adequate for short casino-domain
// queries. Ties resolve to Spanish, the system's default locale.

var spanishMarkers = map[string]bool{
	"que": true, "cual": true, "cuales": true, "como": true, "cuanto": true,
	"cuanta": true, "donde": true, "cuando": true, "por": true, "para": true,
	"con": true, "del": true, "las": true, "los": true, "una": true,
	"juego": true, "juegos": true, "jugar": true, "ganar": true,
	"probabilidad": true, "probabilidades": true, "reglas": true,
	"regla": true, "apuesta": true, "apostar": true, "mejor": true,
	"ventaja": true, "pago": true, "premio": true, "seguro": true,
	"rojo": true, "negro": true, "numero": true, "casa": true,
	"ruleta": true, "tragaperras": true, "dados": true,
}

var englishMarkers = map[string]bool{
	"what": true, "which": true, "how": true, "where": true, "when": true,
	"the": true, "and": true, "for": true, "with": true, "this": true,
	"game": true, "games": true, "play": true, "playing": true, "win": true,
	"probability": true, "odds": true, "rules": true, "bet": true,
	"betting": true, "best": true, "edge": true, "payout": true,
	"insurance": true, "red": true, "black": true, "number": true,
	"house": true, "roulette": true, "slots": true, "dice": true,
}

// DetectLanguage votes tokens against both marker lists and returns the
// ISO code of the winner ("es" or "en").
func DetectLanguage(tokens []string) string {
	var es, en int
	for _, tok := range tokens {
		if spanishMarkers[tok] {
			es++
		}
		if englishMarkers[tok] {
			en++
		}
	}
	if en > es {
		return "en"
	}
	return "es"
}
