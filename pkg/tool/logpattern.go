/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/opensearch-project/skills-go/pkg/appconfig"
	"github.com/opensearch-project/skills-go/pkg/logger"
	"github.com/opensearch-project/skills-go/pkg/normalize"
	"github.com/opensearch-project/skills-go/pkg/pattern"
	"github.com/opensearch-project/skills-go/pkg/pattern/cluster"
	"github.com/opensearch-project/skills-go/pkg/query"
	"github.com/opensearch-project/skills-go/pkg/records"
	"github.com/opensearch-project/skills-go/pkg/searchclient"
	"github.com/opensearch-project/skills-go/pkg/util"
)

const (
	LogPatternToolName = "LogPatternTool"

	// EmptyQueryResponse is returned, as a normal result, when retrieval
	// yields zero records.
	EmptyQueryResponse = "Can not get any match from search result."
)

type (
	// settings are the effective per-invocation knobs. Defaults come from
	// construction; params may override per call and are re-validated then.
	// A copy lives on the stack of each Execute call, so concurrent
	// invocations of one tool never interfere.
	settings struct {
		patternField           string
		patternExpr            string
		topNPattern            int
		sampleLogSize          int
		variableCountThreshold int
		thresholdPercentage    float64
		docSize                int
		clustering             bool
	}

	// LogPatternTool retrieves a batch of log records via DSL or PPL and
	// returns the top pattern groups with representative samples.
	LogPatternTool struct {
		executor searchclient.Executor
		defaults settings
	}

	// patternResult is one ranked group in the tool output.
	patternResult struct {
		TotalCount int      `json:"total count"`
		Pattern    string   `json:"pattern"`
		SampleLogs []string `json:"sample logs"`
	}
)

func NewLogPatternTool(executor searchclient.Executor, cfg appconfig.LogPatternConfig) (*LogPatternTool, error) {
	defaults := settings{
		patternField:           cfg.PatternField,
		patternExpr:            cfg.Pattern,
		topNPattern:            cfg.TopNPattern,
		sampleLogSize:          cfg.SampleLogSize,
		variableCountThreshold: cfg.VariableCountThreshold,
		thresholdPercentage:    cfg.ThresholdPercentage,
		docSize:                cfg.DocSize,
		clustering:             cfg.Clustering,
	}
	if err := defaults.validate(); err != nil {
		return nil, err
	}
	return &LogPatternTool{executor: executor, defaults: defaults}, nil
}

func (s *settings) validate() error {
	if s.topNPattern <= 0 {
		return errors.Errorf("top_n_pattern must be positive, got %d", s.topNPattern)
	}
	if s.sampleLogSize <= 0 {
		return errors.Errorf("sample_log_size must be positive, got %d", s.sampleLogSize)
	}
	if s.variableCountThreshold <= 0 {
		return errors.Errorf("variable_count_threshold must be positive, got %d", s.variableCountThreshold)
	}
	if s.thresholdPercentage <= 0 || s.thresholdPercentage > 1 {
		return errors.Errorf("threshold_percentage must be in (0,1], got %v", s.thresholdPercentage)
	}
	if s.docSize <= 0 {
		return errors.Errorf("doc_size must be positive, got %d", s.docSize)
	}
	if s.patternExpr != "" && s.clustering {
		return errors.New("custom pattern expression and clustering are mutually exclusive")
	}
	if _, err := pattern.NewMasker(s.patternExpr); err != nil {
		return err
	}
	return nil
}

// override applies per-call parameters. Invalid values are errors, they
// never silently fall back to defaults.
func (s *settings) override(params map[string]string) error {
	if v, ok := params["pattern_field"]; ok {
		s.patternField = v
	}
	if v, ok := params["pattern"]; ok {
		s.patternExpr = v
	}
	var err error
	if v, ok := params["top_n_pattern"]; ok {
		if s.topNPattern, err = cast.ToIntE(v); err != nil {
			return errors.Wrap(err, "invalid top_n_pattern")
		}
	}
	if v, ok := params["sample_log_size"]; ok {
		if s.sampleLogSize, err = cast.ToIntE(v); err != nil {
			return errors.Wrap(err, "invalid sample_log_size")
		}
	}
	if v, ok := params["variable_count_threshold"]; ok {
		if s.variableCountThreshold, err = cast.ToIntE(v); err != nil {
			return errors.Wrap(err, "invalid variable_count_threshold")
		}
	}
	if v, ok := params["threshold_percentage"]; ok {
		if s.thresholdPercentage, err = cast.ToFloat64E(v); err != nil {
			return errors.Wrap(err, "invalid threshold_percentage")
		}
	}
	if v, ok := params["doc_size"]; ok {
		if s.docSize, err = cast.ToIntE(v); err != nil {
			return errors.Wrap(err, "invalid doc_size")
		}
	}
	return s.validate()
}

func (t *LogPatternTool) Name() string {
	return LogPatternToolName
}

// Execute runs the full pipeline: preprocess query, retrieve, normalize,
// resolve the pattern field, group, rank and serialize. All errors are
// terminal for the invocation, nothing is retried here.
func (t *LogPatternTool) Execute(ctx context.Context, params map[string]string) (string, error) {
	begin := time.Now()
	invocationID := uuid.NewString()

	s := t.defaults
	if err := s.override(params); err != nil {
		return "", err
	}

	dsl := util.FirstNotEmpty(params["input"], params["dsl"])
	ppl := params["ppl"]
	if dsl == "" && ppl == "" {
		return "", errors.New("either dsl/input or ppl parameter is required")
	}

	batch, err := t.retrieve(ctx, params, dsl, ppl, s.docSize)
	if err != nil {
		return "", err
	}
	if len(batch) == 0 {
		logger.Infoz("[tool] log pattern empty result",
			zap.String("id", invocationID),
			zap.Duration("cost", time.Since(begin)))
		return EmptyQueryResponse, nil
	}

	field, err := pattern.SelectField(batch[0], s.patternField)
	if err != nil {
		return "", err
	}

	values := collectFieldValues(batch, field)

	extractor, err := s.newExtractor()
	if err != nil {
		return "", err
	}
	groups := extractor.Cluster(values)
	ranked := pattern.Rank(groups, s.topNPattern)

	results := make([]patternResult, 0, len(ranked))
	for _, g := range ranked {
		results = append(results, patternResult{
			TotalCount: len(g.Indices),
			Pattern:    g.Signature,
			SampleLogs: pattern.Sample(values, g, s.sampleLogSize),
		})
	}
	out, err := json.Marshal(results)
	if err != nil {
		return "", errors.Wrap(err, "serialize log pattern result")
	}

	logger.Infoz("[tool] log pattern done",
		zap.String("id", invocationID),
		zap.String("field", field),
		zap.Int("records", len(batch)),
		zap.Int("values", len(values)),
		zap.Int("groups", len(groups)),
		zap.Int("returned", len(ranked)),
		zap.Duration("cost", time.Since(begin)))
	return string(out), nil
}

func (t *LogPatternTool) retrieve(ctx context.Context, params map[string]string, dsl, ppl string, docSize int) ([]*records.Record, error) {
	if dsl != "" {
		index := params["index"]
		if index == "" {
			return nil, errors.New("index parameter is required for dsl queries")
		}
		stripped, err := query.StripDSLAggregations(dsl)
		if err != nil {
			return nil, err
		}
		result, err := t.executor.SearchDSL(ctx, index, stripped, docSize)
		if err != nil {
			return nil, errors.Wrap(err, "execute dsl query")
		}
		return normalize.FromSearchHits(result.Hits)
	}

	stripped := query.StripPPLStats(ppl)
	result, err := t.executor.QueryPPL(ctx, stripped)
	if err != nil {
		return nil, errors.Wrap(err, "execute ppl query")
	}
	if len(result.Datarows) > docSize {
		result = &searchclient.PPLResult{Schema: result.Schema, Datarows: result.Datarows[:docSize]}
	}
	return normalize.FromPPLResult(result), nil
}

// collectFieldValues gathers the pattern field value of each record, in
// record order. Records where the field is absent or not a string are
// skipped; the first record is guaranteed valid by SelectField.
func collectFieldValues(batch []*records.Record, field string) []string {
	values := make([]string, 0, len(batch))
	for _, r := range batch {
		v, ok := r.GetPath(field)
		if !ok {
			continue
		}
		if s, isStr := v.Str(); isStr {
			values = append(values, s)
		}
	}
	return values
}

func (s *settings) newExtractor() (pattern.Extractor, error) {
	if s.clustering {
		return cluster.New(cluster.Options{
			VariableCountThreshold: s.variableCountThreshold,
			ThresholdPercentage:    s.thresholdPercentage,
		})
	}
	masker, err := pattern.NewMasker(s.patternExpr)
	if err != nil {
		return nil, err
	}
	return pattern.NewMaskExtractor(masker), nil
}
