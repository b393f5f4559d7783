/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package pattern

import "sort"

type (
	// Group collects the input indices sharing one signature. Indices are in
	// scan order; groups themselves are created in first-seen order, which
	// also serves as the ranking tie-break so equal-sized groups come out in
	// a reproducible order.
	Group struct {
		Signature string
		Indices   []int
	}

	// Extractor is the pluggable signature capability: it partitions the
	// given values into signature groups. Implementations must return
	// groups in first-seen order with indices in input order.
	Extractor interface {
		Cluster(values []string) []*Group
	}
)

// maskExtractor is the fixed-alphabet / custom-regex strategy.
type maskExtractor struct {
	masker *Masker
}

func NewMaskExtractor(masker *Masker) Extractor {
	return &maskExtractor{masker: masker}
}

func (e *maskExtractor) Cluster(values []string) []*Group {
	bySignature := make(map[string]*Group, len(values))
	var groups []*Group
	for i, v := range values {
		sig := e.masker.Mask(v)
		g, ok := bySignature[sig]
		if !ok {
			g = &Group{Signature: sig}
			bySignature[sig] = g
			groups = append(groups, g)
		}
		g.Indices = append(g.Indices, i)
	}
	return groups
}

// Rank sorts groups by member count descending and truncates to topN.
// The sort is stable over first-seen order, so ties are deterministic.
// The input slice is not modified.
func Rank(groups []*Group, topN int) []*Group {
	ranked := make([]*Group, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Indices) > len(ranked[j].Indices)
	})
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// Sample returns the first min(len(group), sampleSize) member values, in
// original input order.
func Sample(values []string, g *Group, sampleSize int) []string {
	n := sampleSize
	if len(g.Indices) < n {
		n = len(g.Indices)
	}
	out := make([]string, 0, n)
	for _, idx := range g.Indices[:n] {
		out = append(out, values[idx])
	}
	return out
}
