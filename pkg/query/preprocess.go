/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package query prepares raw DSL / PPL query text for log pattern retrieval.
// Aggregated result rows cannot be pattern-mined per record, so any
// aggregation stage is stripped before the query is executed.
package query

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var aggregationKeys = []string{"aggs", "aggregations"}

// pipe then the stats keyword, first match wins
var pplStatsPattern = regexp.MustCompile(`(?i)\|\s*stats\b`)

// StripDSLAggregations removes the top-level "aggs"/"aggregations" keys from
// a DSL query. Absence of both keys is a no-op. Key order of the remaining
// query is not preserved, the backend does not care.
func StripDSLAggregations(dsl string) (string, error) {
	if !gjson.Valid(dsl) || !gjson.Parse(dsl).IsObject() {
		return "", errors.New("query: dsl is not a json object")
	}
	hasAggs := false
	for _, key := range aggregationKeys {
		if gjson.Get(dsl, key).Exists() {
			hasAggs = true
			break
		}
	}
	if !hasAggs {
		return dsl, nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(dsl), &obj); err != nil {
		return "", errors.Wrap(err, "query: parse dsl")
	}
	for _, key := range aggregationKeys {
		delete(obj, key)
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return "", errors.Wrap(err, "query: serialize dsl")
	}
	return string(out), nil
}

// StripPPLStats cuts a PPL query just before its first stats stage.
// Whitespace runs are collapsed first so '|   stats' and '|stats' both
// match; the retained prefix keeps its original case because some PPL
// functions are case-sensitive.
func StripPPLStats(ppl string) string {
	collapsed := strings.Join(strings.Fields(ppl), " ")
	loc := pplStatsPattern.FindStringIndex(collapsed)
	if loc == nil {
		return ppl
	}
	return strings.TrimSpace(collapsed[:loc[0]])
}
