package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardlens/boardlens/internal/core"
)

func TestScoreExactMatch(t *testing.T) {
	// Exact (+100) plus the post-strip check (+70), which is a no-op strip
	// on a clean title.
	require.Equal(t, 170, Score("Ark Nova", "ark nova"))
	require.Equal(t, 170, Score("  Ark Nova  ", "Ark Nova"))
}

func TestScorePrefixMatch(t *testing.T) {
	// Prefix (+80) plus the post-strip prefix check (+70).
	require.Equal(t, 150, Score("Ark Nova Zoo Edition", "ark nova"))
}

func TestScoreUnrelatedName(t *testing.T) {
	require.Equal(t, 0, Score("Azul", "catan"))
}

func TestScoreMarkerPenaltyAppliesOnce(t *testing.T) {
	// Prefix (+80), one marker (-50), post-strip prefix check (+70)
	require.Equal(t, 100, Score("Catan: Seafarers", "catan"))
	// Several markers still cost a single penalty
	require.Equal(t, 100, Score("Catan: Seafarers Expansion", "catan"))
	// Marker without any name match goes negative
	require.Equal(t, -50, Score("Azul: Summer Pavilion", "catan"))
}

func TestScoreEditionSuffixRecoversGround(t *testing.T) {
	// Prefix (+80), subtitle marker (-50), edition suffix strips back to the
	// query (+70).
	require.Equal(t, 100, Score("Terraforming Mars: 2nd Edition", "terraforming mars"))
}

func TestScoreEditionSuffixOnUnrelatedName(t *testing.T) {
	// The suffix strips to a name that neither equals nor extends the query,
	// so no recovery.
	require.Equal(t, -50, Score("Azul: Second Edition", "catan"))
}

func TestScoreCanonicalBeatsEdition(t *testing.T) {
	canonical := Score("Catan", "catan")
	edition := Score("Catan: 2nd Edition", "catan")
	require.Equal(t, 170, canonical)
	require.Equal(t, 100, edition)

	// Even when the edition appears first in the search results, ranking
	// puts the clean title ahead of it.
	candidates := []core.ScoredCandidate{
		{ID: "edition", Score: edition},
		{ID: "canonical", Score: canonical},
	}
	Rank(candidates)
	require.Equal(t, "canonical", candidates[0].ID)
}

func TestRankDescendingAndStable(t *testing.T) {
	candidates := []core.ScoredCandidate{
		{ID: "a", Score: 50},
		{ID: "b", Score: 80},
		{ID: "c", Score: 80},
		{ID: "d", Score: 30},
	}

	Rank(candidates)

	ids := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		ids = append(ids, cand.ID)
	}
	require.Equal(t, []string{"b", "c", "a", "d"}, ids)
}
