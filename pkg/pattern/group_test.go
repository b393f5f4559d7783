package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMaskExtractor(t *testing.T) Extractor {
	m, err := NewMasker("")
	require.NoError(t, err)
	return NewMaskExtractor(m)
}

func TestMaskExtractor_GroupsFirstSeenOrder(t *testing.T) {
	values := []string{
		"ERROR 404 at /a",
		"INFO ok",
		"ERROR 500 at /b",
	}
	groups := mustMaskExtractor(t).Cluster(values)
	require.Len(t, groups, 2)

	assert.Equal(t, "   /", groups[0].Signature)
	assert.Equal(t, []int{0, 2}, groups[0].Indices)
	assert.Equal(t, " ", groups[1].Signature)
	assert.Equal(t, []int{1}, groups[1].Indices)

	// no record is dropped during grouping
	total := 0
	for _, g := range groups {
		total += len(g.Indices)
	}
	assert.Equal(t, len(values), total)
}

func TestRank_DescendingAndTruncated(t *testing.T) {
	groups := []*Group{
		{Signature: "a", Indices: []int{0}},
		{Signature: "b", Indices: []int{1, 2, 3}},
		{Signature: "c", Indices: []int{4, 5}},
	}
	ranked := Rank(groups, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Signature)
	assert.Equal(t, "c", ranked[1].Signature)

	// input order untouched
	assert.Equal(t, "a", groups[0].Signature)
}

func TestRank_TieBreakFirstSeen(t *testing.T) {
	groups := []*Group{
		{Signature: "x", Indices: []int{0, 1}},
		{Signature: "y", Indices: []int{2, 3}},
		{Signature: "z", Indices: []int{4, 5}},
	}
	ranked := Rank(groups, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "x", ranked[0].Signature)
	assert.Equal(t, "y", ranked[1].Signature)
	assert.Equal(t, "z", ranked[2].Signature)
}

func TestRank_TopNLargerThanGroups(t *testing.T) {
	groups := []*Group{{Signature: "a", Indices: []int{0}}}
	assert.Len(t, Rank(groups, 5), 1)
}

func TestSample(t *testing.T) {
	values := []string{"v0", "v1", "v2", "v3"}
	g := &Group{Signature: "s", Indices: []int{0, 2, 3}}

	// prefix of member values in original order
	assert.Equal(t, []string{"v0", "v2"}, Sample(values, g, 2))

	// sample size beyond group size returns the whole group
	assert.Equal(t, []string{"v0", "v2", "v3"}, Sample(values, g, 10))
}
