package catalog

import (
	"sort"
	"strings"

	"github.com/boardlens/boardlens/internal/core"
)

const (
	exactBonus    = 100
	prefixBonus   = 80
	editionBonus  = 70
	markerPenalty = 50
)

// markers flag names that are likely promos, expansions or subtitled variants.
var markers = []string{"promo", "expansion", "exp.", " – ", ": ", " - "}

// editionSuffixes are removed before the second match check, so later
// editions of the queried game still rank above unrelated prefix matches.
var editionSuffixes = []string{
	": second edition",
	" – second edition",
	": 2nd edition",
	" – 2nd edition",
	": 3rd edition",
	" – 3rd edition",
	" (second edition)",
	" (3rd edition)",
}

// Score rates how well a primary title matches the searched name. Exact
// matches beat prefix matches; marker terms push variant items down; a
// second check after removing edition suffixes stacks on top, so a clean
// exact title still outranks an edition of itself even after the marker
// penalty.
func Score(name, query string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	q := strings.ToLower(strings.TrimSpace(query))

	score := 0
	switch {
	case n == q:
		score += exactBonus
	case strings.HasPrefix(n, q):
		score += prefixBonus
	}

	for _, marker := range markers {
		if strings.Contains(n, marker) {
			score -= markerPenalty
			break
		}
	}

	stripped := n
	for _, suffix := range editionSuffixes {
		stripped = strings.ReplaceAll(stripped, suffix, "")
	}
	if stripped == q || strings.HasPrefix(stripped, q) {
		score += editionBonus
	}

	return score
}

// Rank sorts candidates by descending score. The sort is stable so candidates
// with equal scores keep their search-result order.
func Rank(candidates []core.ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
