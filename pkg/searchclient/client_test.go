package searchclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDSL(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"hits":{"hits":[
			{"_index":"logs","_id":"1","_source":{"message":"a"}},
			{"_index":"logs","_id":"2","_source":{"message":"b"}}
		]}}`))
	}))
	defer server.Close()

	c := New(Config{Addr: strings.TrimPrefix(server.URL, "http://"), Username: "admin", Password: "secret"})
	result, err := c.SearchDSL(context.Background(), "logs", `{"query":{"match_all":{}}}`, 100)
	require.NoError(t, err)

	assert.Equal(t, "/logs/_search", gotPath)
	assert.NotEmpty(t, gotAuth)
	assert.Equal(t, float64(100), gotBody["size"])
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "1", result.Hits[0].ID)
	assert.JSONEq(t, `{"message":"a"}`, string(result.Hits[0].Source))
}

func TestSearchDSL_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"index_not_found_exception"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := New(Config{Addr: strings.TrimPrefix(server.URL, "http://")})
	_, err := c.SearchDSL(context.Background(), "missing", `{"query":{}}`, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index_not_found_exception")
}

func TestSearchDSL_InvalidDSL(t *testing.T) {
	c := New(Config{Addr: "localhost:1"})
	_, err := c.SearchDSL(context.Background(), "logs", `not json`, 10)
	assert.Error(t, err)
}

func TestQueryPPL(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_plugins/_ppl", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotQuery)
		w.Write([]byte(`{
			"schema":[{"name":"message","type":"string"},{"name":"status","type":"integer"}],
			"datarows":[["hello",200],["world",500]]
		}`))
	}))
	defer server.Close()

	c := New(Config{Addr: strings.TrimPrefix(server.URL, "http://")})
	result, err := c.QueryPPL(context.Background(), "source=logs | head 10")
	require.NoError(t, err)

	assert.Equal(t, "source=logs | head 10", gotQuery["query"])
	require.Len(t, result.Schema, 2)
	assert.Equal(t, "message", result.Schema[0].Name)
	require.Len(t, result.Datarows, 2)
	assert.Equal(t, "hello", result.Datarows[0][0])
}

func TestWaitReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(Config{Addr: strings.TrimPrefix(server.URL, "http://")})
	assert.NoError(t, c.WaitReady(context.Background()))
}

func TestWaitReady_ContextCancel(t *testing.T) {
	c := New(Config{Addr: "localhost:1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.WaitReady(ctx))
}
