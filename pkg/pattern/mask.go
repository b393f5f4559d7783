/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package pattern reduces raw log text to structural signatures, groups
// records by signature and ranks the groups by size.
package pattern

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Masker produces a pattern signature by deleting variable content.
// With no custom expression the fixed alphabet [A-Za-z0-9] is removed and
// everything else (punctuation, whitespace, non-ASCII) is kept in order.
// Masking is idempotent: the output contains nothing left to remove.
type Masker struct {
	expr *regexp.Regexp
}

func NewMasker(expr string) (*Masker, error) {
	if expr == "" {
		return &Masker{}, nil
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern expression %q", expr)
	}
	return &Masker{expr: compiled}, nil
}

func (m *Masker) Mask(s string) string {
	if m.expr != nil {
		return m.expr.ReplaceAllString(s, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
