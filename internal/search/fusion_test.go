package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredDocs(ids ...string) []Scored[testDoc] {
	out := make([]Scored[testDoc], len(ids))
	for i, id := range ids {
		out[i] = Scored[testDoc]{Item: testDoc{id: id}, Score: float64(len(ids) - i)}
	}
	return out
}

func TestFuseRanked_TopRankContribution(t *testing.T) {
	fused := FuseRanked(testDoc.Identity, scoredDocs("a", "b"))
	require.Len(t, fused, 2)
	assert.Equal(t, "a", fused[0].Item.id)
	assert.InDelta(t, 1.0/float64(RRFConstant), fused[0].Score, 1e-12)
	assert.InDelta(t, 1.0/float64(RRFConstant+1), fused[1].Score, 1e-12)
}

func TestFuseRanked_AgreementBeatsSingleHighRank(t *testing.T) {
	// "both" is second in two lists; "solo" tops one list. Appearing in
	// both rankings must outweigh a single first place.
	lexical := scoredDocs("solo", "both")
	semantic := scoredDocs("other", "both")

	fused := FuseRanked(testDoc.Identity, lexical, semantic)
	require.NotEmpty(t, fused)
	assert.Equal(t, "both", fused[0].Item.id)
	assert.InDelta(t, 2.0/float64(RRFConstant+1), fused[0].Score, 1e-12)
}

func TestFuseRanked_ScoresIgnoredOnlyRankMatters(t *testing.T) {
	huge := []Scored[testDoc]{
		{Item: testDoc{id: "a"}, Score: 9000},
		{Item: testDoc{id: "b"}, Score: 8999},
	}
	tiny := []Scored[testDoc]{
		{Item: testDoc{id: "b"}, Score: 0.0002},
		{Item: testDoc{id: "a"}, Score: 0.0001},
	}

	fused := FuseRanked(testDoc.Identity, huge, tiny)
	require.Len(t, fused, 2)
	// Each id holds rank 0 in one list and rank 1 in the other, so the
	// raw score magnitudes must not break the symmetry.
	assert.InDelta(t, fused[0].Score, fused[1].Score, 1e-12)
}

func TestFuseRanked_TiesBreakByIdentity(t *testing.T) {
	fused := FuseRanked(testDoc.Identity, scoredDocs("zeta"), scoredDocs("alpha"))
	require.Len(t, fused, 2)
	assert.Equal(t, "alpha", fused[0].Item.id)
	assert.Equal(t, "zeta", fused[1].Item.id)
}

func TestFuseRanked_FirstOccurrenceRetained(t *testing.T) {
	first := []Scored[testDoc]{{Item: testDoc{id: "a", text: "from lexical"}}}
	second := []Scored[testDoc]{{Item: testDoc{id: "a", text: "from semantic"}}}

	fused := FuseRanked(testDoc.Identity, first, second)
	require.Len(t, fused, 1)
	assert.Equal(t, "from lexical", fused[0].Item.text)
}

func TestFuseRanked_EmptyInputs(t *testing.T) {
	assert.Empty(t, FuseRanked(testDoc.Identity))
	assert.Empty(t, FuseRanked(testDoc.Identity, nil, nil))
}
