/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package searchclient talks to an OpenSearch-compatible endpoint. It is the
// retrieval collaborator of the log pattern pipeline: it owns transport,
// auth and pacing; it never interprets result contents.
package searchclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"go.uber.org/ratelimit"

	"github.com/opensearch-project/skills-go/pkg/logger"
	"github.com/opensearch-project/skills-go/pkg/util"
)

const (
	defaultTimeout = 30 * time.Second
	pplEndpoint    = "/_plugins/_ppl"
)

type (
	// Executor is the retrieval boundary the tool layer depends on. Both
	// operations deliver a complete batch or an error; the pattern pipeline
	// itself starts only after one of them returns.
	Executor interface {
		SearchDSL(ctx context.Context, index string, dsl string, size int) (*SearchResult, error)
		QueryPPL(ctx context.Context, ppl string) (*PPLResult, error)
	}

	Config struct {
		Addr               string        `json:"addr" yaml:"addr" toml:"addr"`
		Username           string        `json:"username" yaml:"username" toml:"username"`
		Password           string        `json:"password" yaml:"password" toml:"password"`
		Secure             bool          `json:"secure" yaml:"secure" toml:"secure"`
		InsecureSkipVerify bool          `json:"insecureSkipVerify" yaml:"insecureSkipVerify" toml:"insecureSkipVerify"`
		Timeout            time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`
		// RatePerSecond limits outgoing queries, 0 disables the limiter
		RatePerSecond int `json:"ratePerSecond" yaml:"ratePerSecond" toml:"ratePerSecond"`
	}

	Client struct {
		config  Config
		baseURL string
		http    *http.Client
		limiter ratelimit.Limiter
	}

	// Hit is one document hit. Source stays raw so the normalizer can decode
	// it with field order preserved.
	Hit struct {
		Index  string          `json:"_index"`
		ID     string          `json:"_id"`
		Source json.RawMessage `json:"_source"`
	}
	SearchResult struct {
		Hits []Hit
	}

	ColumnMeta struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	PPLResult struct {
		Schema   []ColumnMeta    `json:"schema"`
		Datarows [][]interface{} `json:"datarows"`
	}

	searchResponse struct {
		Hits struct {
			Hits []Hit `json:"hits"`
		} `json:"hits"`
	}
)

func New(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	scheme := "http"
	transport := http.DefaultTransport
	if config.Secure {
		scheme = "https"
		if config.InsecureSkipVerify {
			transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}
	var limiter ratelimit.Limiter = ratelimit.NewUnlimited()
	if config.RatePerSecond > 0 {
		limiter = ratelimit.New(config.RatePerSecond)
	}
	return &Client{
		config:  config,
		baseURL: scheme + "://" + strings.TrimSuffix(config.Addr, "/"),
		http:    &http.Client{Transport: transport, Timeout: config.Timeout},
		limiter: limiter,
	}
}

// WaitReady blocks until the backend answers, pacing attempts with a
// backoff. Used once at startup; query-time errors are never retried here.
func (c *Client) WaitReady(ctx context.Context) error {
	b := &backoff.Backoff{Min: time.Second, Max: 30 * time.Second, Jitter: true}
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
		if err != nil {
			return errors.Wrap(err, "searchclient: build ping request")
		}
		c.auth(req)
		resp, err := c.http.Do(req)
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 500 {
				return nil
			}
			err = errors.Errorf("backend status %d", resp.StatusCode)
		}
		d := b.Duration()
		logger.Warnf("[searchclient] backend not ready, retry in %v: %+v", d, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
}

func (c *Client) auth(req *http.Request) {
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	c.limiter.Take()

	buf, err := util.ToJsonBufferE(body)
	if err != nil {
		return nil, errors.Wrap(err, "searchclient: encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return nil, errors.Wrap(err, "searchclient: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.auth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "searchclient: read response")
	}
	if resp.StatusCode >= 300 {
		return nil, errors.Errorf("backend status %d: %s", resp.StatusCode, util.SubstringMax(string(respBody), 512))
	}
	return respBody, nil
}

// SearchDSL executes a DSL query against index, capping the batch at size.
func (c *Client) SearchDSL(ctx context.Context, index string, dsl string, size int) (*SearchResult, error) {
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(dsl), &body); err != nil {
		return nil, errors.Wrap(err, "searchclient: dsl is not a json object")
	}
	if size > 0 {
		body["size"] = size
	}
	path := fmt.Sprintf("/%s/_search", index)
	begin := time.Now()
	respBody, err := c.post(ctx, path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "searchclient: search %s", index)
	}
	var decoded searchResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, errors.Wrapf(err, "searchclient: decode search response for %s", index)
	}
	logger.Debugf("[searchclient] search %s hits=%d cost=%v", index, len(decoded.Hits.Hits), time.Since(begin))
	return &SearchResult{Hits: decoded.Hits.Hits}, nil
}

// QueryPPL executes a PPL query, returning the tabular schema and rows.
func (c *Client) QueryPPL(ctx context.Context, ppl string) (*PPLResult, error) {
	begin := time.Now()
	respBody, err := c.post(ctx, pplEndpoint, map[string]string{"query": ppl})
	if err != nil {
		return nil, errors.Wrap(err, "searchclient: execute ppl")
	}
	var decoded PPLResult
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, errors.Wrap(err, "searchclient: decode ppl response")
	}
	logger.Debugf("[searchclient] ppl rows=%d cost=%v", len(decoded.Datarows), time.Since(begin))
	return &PPLResult{Schema: decoded.Schema, Datarows: decoded.Datarows}, nil
}
