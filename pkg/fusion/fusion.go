// Package fusion merges local ontology candidates with external knowledge
// candidates into one deduplicated, ranked result list.
package fusion

import (
	"sort"
	"strings"

	"github.com/ludokb/ludokb-go/pkg/models"
	"github.com/ludokb/ludokb-go/pkg/nlu"
	"github.com/ludokb/ludokb-go/utils"
)

// Per-origin boost factors. Local results are intentionally favored at
// comparable scores: the bundled ontology is curated, the remote source
// is not.
const (
	LocalBoost  = 1.2
	RemoteBoost = 1.0
)

// Match bonuses applied at fusion time, stacked atop any pre-existing
// origin score. Remote bonuses sit slightly below local ones so the
// origin boost keeps its intended ordering effect.
const (
	localExactBonus       = 10.0
	localSubstringBonus   = 5.0
	localDescriptionBonus = 3.0
	localAbstractBonus    = 2.0

	remoteExactBonus       = 8.0
	remoteSubstringBonus   = 4.0
	remoteDescriptionBonus = 2.0
	remoteAbstractBonus    = 2.0
	remoteThumbnailBonus   = 1.0
)

// nameFoldLength is the deliberately coarse dedupe fold: names are
// stripped to alphanumerics and truncated so near-identical labels
// ("Blackjack" vs "Blackjack (casino game)") collapse to one entity.
const nameFoldLength = 20

// DefaultMaxResults caps the returned list when the caller gives no limit
const DefaultMaxResults = 20

// Engine merges and ranks candidate lists
type Engine struct {
	logger *utils.Logger
}

// NewEngine creates a fusion engine
func NewEngine() *Engine {
	return &Engine{logger: utils.GetLogger()}
}

// CombineAndRank merges both candidate sets, deduplicates by folded
// display name, and returns the ranked list plus its statistics. Two
// names collide when one folded name is a prefix of the other, so
// "Blackjack" and "Blackjack (casino game)" count as one entity. The
// dedupe tie-break is deterministic: the higher boosted score survives
// regardless of insertion order, and an exact score tie keeps the local
// candidate. Sorting is stable so equal scores keep insertion order.
func (e *Engine) CombineAndRank(local []models.Candidate, external models.ExternalResult, query string, maxResults int) ([]models.Candidate, models.SearchStats) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	queryNorm := nlu.Normalize(query)

	type slot struct {
		candidate models.Candidate
		boosted   float64
		order     int
	}
	slots := make(map[string]*slot)
	var keys []string

	// Candidate sets are small (local capped at 10, remote at ~30), so a
	// linear prefix scan over the folded keys is fine.
	matchKey := func(key string) (string, bool) {
		for _, existing := range keys {
			if strings.HasPrefix(key, existing) || strings.HasPrefix(existing, key) {
				return existing, true
			}
		}
		return "", false
	}

	fold := func(cand models.Candidate) {
		key := FoldName(cand.DisplayName)
		if key == "" {
			// Nothing to fold on; the marker keeps nameless candidates
			// from prefix-colliding with real folded names.
			key = "\x00" + cand.URI
		}
		boosted := cand.Relevance * originBoost(cand.Origin)
		if hit, ok := matchKey(key); ok {
			key = hit
		}
		existing, ok := slots[key]
		if !ok {
			slots[key] = &slot{candidate: cand, boosted: boosted, order: len(keys)}
			keys = append(keys, key)
			return
		}
		if boosted > existing.boosted ||
			(boosted == existing.boosted && cand.Origin == models.OriginLocal && existing.candidate.Origin != models.OriginLocal) {
			existing.candidate = cand
			existing.boosted = boosted
		}
	}

	for _, cand := range local {
		cand.Relevance += localBonus(cand, queryNorm)
		fold(cand)
	}
	externalAll := external.All()
	for _, cand := range externalAll {
		cand.Relevance += remoteBonus(cand, queryNorm)
		fold(cand)
	}

	fused := make([]*slot, 0, len(keys))
	for _, key := range keys {
		fused = append(fused, slots[key])
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].boosted > fused[j].boosted
	})

	stats := models.SearchStats{
		Total:         len(fused),
		LocalCount:    len(local),
		ExternalCount: len(externalAll),
	}
	if len(fused) > 0 {
		stats.MaxRelevance = fused[0].boosted
	}

	if len(fused) > maxResults {
		fused = fused[:maxResults]
	}
	ranked := make([]models.Candidate, 0, len(fused))
	for _, s := range fused {
		ranked = append(ranked, s.candidate)
	}
	return ranked, stats
}

func originBoost(origin models.OriginKind) float64 {
	if origin == models.OriginLocal {
		return LocalBoost
	}
	return RemoteBoost
}

// localBonus scores a local candidate against the query text
func localBonus(cand models.Candidate, queryNorm string) float64 {
	if queryNorm == "" {
		return 0
	}
	var bonus float64
	name := nlu.Normalize(cand.DisplayName)
	switch {
	case name == queryNorm:
		bonus += localExactBonus
	case strings.Contains(queryNorm, name) || strings.Contains(name, queryNorm):
		bonus += localSubstringBonus
	}
	if propContains(cand.Properties, []string{"descripcion", "description"}, queryNorm) {
		bonus += localDescriptionBonus
	}
	if propContains(cand.Properties, []string{"abstract", "resumen"}, queryNorm) {
		bonus += localAbstractBonus
	}
	return bonus
}

// remoteBonus scores a remote candidate against the query text
func remoteBonus(cand models.Candidate, queryNorm string) float64 {
	if queryNorm == "" {
		return 0
	}
	var bonus float64
	name := nlu.Normalize(cand.DisplayName)
	switch {
	case name == queryNorm:
		bonus += remoteExactBonus
	case strings.Contains(queryNorm, name) || strings.Contains(name, queryNorm):
		bonus += remoteSubstringBonus
	}
	if strings.Contains(nlu.Normalize(cand.Description), queryNorm) || strings.Contains(nlu.Normalize(cand.Comment), queryNorm) {
		bonus += remoteDescriptionBonus
	}
	if strings.Contains(nlu.Normalize(cand.Abstract), queryNorm) {
		bonus += remoteAbstractBonus
	}
	if cand.Thumbnail != "" {
		bonus += remoteThumbnailBonus
	}
	return bonus
}

// FoldName normalizes a display name to its dedupe key: accents folded,
// non-alphanumerics stripped, truncated to nameFoldLength.
func FoldName(name string) string {
	normalized := nlu.Normalize(name)
	var b strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	folded := b.String()
	if len(folded) > nameFoldLength {
		folded = folded[:nameFoldLength]
	}
	return folded
}

func propContains(props map[string]any, keys []string, queryNorm string) bool {
	for _, key := range keys {
		switch v := props[key].(type) {
		case string:
			if strings.Contains(nlu.Normalize(v), queryNorm) {
				return true
			}
		case []string:
			for _, s := range v {
				if strings.Contains(nlu.Normalize(s), queryNorm) {
					return true
				}
			}
		}
	}
	return false
}
