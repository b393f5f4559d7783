package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensearch-project/skills-go/pkg/searchclient"
)

func TestFromSearchHits(t *testing.T) {
	hits := []searchclient.Hit{
		{ID: "1", Source: json.RawMessage(`{"message":"a","level":"INFO"}`)},
		{ID: "2", Source: json.RawMessage(`{"message":"b"}`)},
	}
	batch, err := FromSearchHits(hits)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	v, ok := batch[0].Get("message")
	assert.True(t, ok)
	s, _ := v.Str()
	assert.Equal(t, "a", s)

	// partial record: absent field is not an error
	_, ok = batch[1].Get("level")
	assert.False(t, ok)
}

func TestFromSearchHits_Empty(t *testing.T) {
	batch, err := FromSearchHits(nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestFromSearchHits_BadSource(t *testing.T) {
	hits := []searchclient.Hit{{ID: "1", Source: json.RawMessage(`[1]`)}}
	_, err := FromSearchHits(hits)
	assert.Error(t, err)
}

func TestFromPPLResult(t *testing.T) {
	result := &searchclient.PPLResult{
		Schema: []searchclient.ColumnMeta{
			{Name: "message", Type: "string"},
			{Name: "", Type: "string"}, // unnamed column is skipped
			{Name: "status", Type: "integer"},
		},
		Datarows: [][]interface{}{
			{"hello", "skipped", float64(200)},
			{"short row"},
		},
	}
	batch := FromPPLResult(result)
	require.Len(t, batch, 2)

	assert.Equal(t, 2, batch[0].Len())
	v, _ := batch[0].Get("status")
	n, ok := v.Num()
	assert.True(t, ok)
	assert.Equal(t, float64(200), n)

	// short row leaves trailing fields absent
	assert.Equal(t, 1, batch[1].Len())
	_, ok = batch[1].Get("status")
	assert.False(t, ok)
}

func TestFromPPLResult_Empty(t *testing.T) {
	batch := FromPPLResult(&searchclient.PPLResult{})
	assert.Empty(t, batch)
}
