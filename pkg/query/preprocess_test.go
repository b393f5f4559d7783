package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDSLAggregations(t *testing.T) {
	out, err := StripDSLAggregations(`{"query":{"match_all":{}},"aggs":{"x":{"terms":{"field":"level"}}}}`)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"query":{"match_all":{}}}`, out)

	out, err = StripDSLAggregations(`{"query":{"match_all":{}},"aggregations":{"x":{}}}`)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"query":{"match_all":{}}}`, out)

	// no aggs is a no-op
	in := `{"query":{"term":{"level":"ERROR"}},"size":10}`
	out, err = StripDSLAggregations(in)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStripDSLAggregations_Invalid(t *testing.T) {
	_, err := StripDSLAggregations(`{"query":`)
	assert.Error(t, err)

	_, err = StripDSLAggregations(`[1,2,3]`)
	assert.Error(t, err)

	_, err = StripDSLAggregations(``)
	assert.Error(t, err)
}

func TestStripPPLStats(t *testing.T) {
	assert.Equal(t, "source=t | where x=1",
		StripPPLStats("source=t | where x=1 | stats count()"))

	// case-insensitive match, whitespace collapsed, prefix case preserved
	assert.Equal(t, "source=t | where UPPER(x)='A'",
		StripPPLStats("source=t  |  where UPPER(x)='A' |  STATS count() by y"))

	assert.Equal(t, "source=t", StripPPLStats("source=t |stats count()"))

	// no stats stage stays untouched
	assert.Equal(t, "source=t | where x=1", StripPPLStats("source=t | where x=1"))
}
