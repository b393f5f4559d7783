/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package util

// SubstringMax returns s truncated to at most max bytes
func SubstringMax(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func StringSliceContains(elems []string, elem string) bool {
	for _, e := range elems {
		if elem == e {
			return true
		}
	}
	return false
}

// FirstNotEmpty returns the first non-empty string
func FirstNotEmpty(a ...string) string {
	for _, s := range a {
		if s != "" {
			return s
		}
	}
	return ""
}
