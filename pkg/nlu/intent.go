package nlu

import "regexp"

// Intent names produced by the classifier
const (
	IntentProbability = "probability"
	IntentPayout      = "payout"
	IntentRules       = "rules"
	IntentStrategy    = "strategy"
	IntentComparison  = "comparison"
	IntentHouseEdge   = "houseEdge"
	IntentDefinition  = "definition"
	IntentSpecific    = "specific"
	IntentSearch      = "search"
)

// intentPattern pairs an intent with the regexes that recognize it.
// Patterns are evaluated against normalized text in declaration order and
// the first match wins; keep this a flat auditable cascade rather than a
// statistical classifier.
type intentPattern struct {
	intent   string
	patterns []*regexp.Regexp
}

var intentCascade = []intentPattern{
	{IntentProbability, compileAll(
		`\bprobabilidad(es)?\b`,
		`\bposibilidad(es)?\b`,
		`\bque tan probable\b`,
		`\bprobability\b`,
		`\bodds\b`,
		`\bchances?\b`,
		`\bhow likely\b`,
	)},
	{IntentPayout, compileAll(
		`\bpagos?\b`,
		`\bcuanto (me )?paga\b`,
		`\bpremios?\b`,
		`\bpayout\b`,
		`\bpays?\b`,
		`\bhow much .*(win|pay)\b`,
	)},
	{IntentRules, compileAll(
		`\breglas?\b`,
		`\bcomo se juega\b`,
		`\bcomo jugar\b`,
		`\brules\b`,
		`\bhow (do you |to )play\b`,
	)},
	{IntentStrategy, compileAll(
		`\bestrategias?\b`,
		`\bconsejos?\b`,
		`\btrucos?\b`,
		`\bstrategy\b`,
		`\btips?\b`,
		`\bbest way\b`,
	)},
	{IntentComparison, compileAll(
		`\bmejor que\b`,
		`\bpeor que\b`,
		`\bdiferencias? entre\b`,
		`\bcomparar?\b`,
		`\bvs\.?\b`,
		`\bversus\b`,
		`\bbetter than\b`,
		`\bdifference between\b`,
		`\bcompared? (to|with)\b`,
	)},
	{IntentHouseEdge, compileAll(
		`\bventaja de (la casa|el casino)\b`,
		`\bventaja del casino\b`,
		`\bmargen de la casa\b`,
		`\bhouse edge\b`,
		`\bcasino advantage\b`,
	)},
	{IntentDefinition, compileAll(
		`\bque es\b`,
		`\bque significa\b`,
		`\bdefinicion\b`,
		`\bwhat is\b`,
		`\bwhat does .* mean\b`,
		`\bdefinition\b`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// ClassifyIntent walks the cascade in priority order over normalized text.
// When no pattern fires but a specific sub-pattern is recognized the
// caller upgrades the default to IntentSpecific; otherwise IntentSearch.
func ClassifyIntent(normalized string) string {
	for _, ip := range intentCascade {
		for _, re := range ip.patterns {
			if re.MatchString(normalized) {
				return ip.intent
			}
		}
	}
	return IntentSearch
}
