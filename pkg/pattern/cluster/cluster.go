/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package cluster implements threshold-driven token clustering: tokens that
// vary too much across similar log lines are masked, stable tokens are kept
// verbatim. It satisfies the pattern.Extractor contract and can be swapped
// for any other heuristic that does.
package cluster

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/opensearch-project/skills-go/pkg/pattern"
)

const (
	DefaultVariableCountThreshold = 5
	DefaultThresholdPercentage    = 0.3
	DefaultMaxLogLength           = 300

	variableToken = "<*>"
)

type (
	Options struct {
		// VariableCountThreshold is the max count of distinct tokens a
		// position may hold before it is considered variable.
		VariableCountThreshold int
		// ThresholdPercentage is the min share of lines the dominant token
		// of a position must cover for the position to stay literal.
		ThresholdPercentage float64
		// MaxLogLength truncates each line before tokenization.
		MaxLogLength int
	}

	Clusterer struct {
		opts Options
	}

	// positionStat tracks the token vocabulary of one token position within
	// one token-count bucket.
	positionStat struct {
		counts map[string]int
		total  int
	}
	bucket struct {
		positions []*positionStat
	}
)

func New(opts Options) (*Clusterer, error) {
	if opts.VariableCountThreshold <= 0 {
		return nil, errors.Errorf("variable count threshold must be positive, got %d", opts.VariableCountThreshold)
	}
	if opts.ThresholdPercentage <= 0 || opts.ThresholdPercentage > 1 {
		return nil, errors.Errorf("threshold percentage must be in (0,1], got %v", opts.ThresholdPercentage)
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = DefaultMaxLogLength
	}
	return &Clusterer{opts: opts}, nil
}

func (c *Clusterer) tokenize(value string) []string {
	if len(value) > c.opts.MaxLogLength {
		value = value[:c.opts.MaxLogLength]
	}
	return strings.Fields(value)
}

// Cluster partitions values into signature groups. Lines with different
// token counts never share a template, so statistics are collected per
// token-count bucket first; the second pass walks values in input order so
// groups come out in first-seen order with indices in scan order.
func (c *Clusterer) Cluster(values []string) []*pattern.Group {
	tokenized := make([][]string, len(values))
	buckets := make(map[int]*bucket)
	for i, v := range values {
		tokens := c.tokenize(v)
		tokenized[i] = tokens
		b, ok := buckets[len(tokens)]
		if !ok {
			b = &bucket{positions: make([]*positionStat, len(tokens))}
			for p := range b.positions {
				b.positions[p] = &positionStat{counts: make(map[string]int)}
			}
			buckets[len(tokens)] = b
		}
		for p, tok := range tokens {
			b.positions[p].counts[tok]++
			b.positions[p].total++
		}
	}

	bySignature := make(map[string]*pattern.Group)
	var groups []*pattern.Group
	var sb strings.Builder
	for i, tokens := range tokenized {
		b := buckets[len(tokens)]
		sb.Reset()
		for p, tok := range tokens {
			if p > 0 {
				sb.WriteByte(' ')
			}
			if b.positions[p].variable(c.opts) {
				sb.WriteString(variableToken)
			} else {
				sb.WriteString(tok)
			}
		}
		sig := sb.String()
		g, ok := bySignature[sig]
		if !ok {
			g = &pattern.Group{Signature: sig}
			bySignature[sig] = g
			groups = append(groups, g)
		}
		g.Indices = append(g.Indices, i)
	}
	return groups
}

func (s *positionStat) variable(opts Options) bool {
	if len(s.counts) > opts.VariableCountThreshold {
		return true
	}
	dominant := 0
	for _, n := range s.counts {
		if n > dominant {
			dominant = n
		}
	}
	return float64(dominant) < opts.ThresholdPercentage*float64(s.total)
}
