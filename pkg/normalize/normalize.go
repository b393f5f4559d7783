/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package normalize converts backend-specific result sets into the common
// ordered record batch the pattern pipeline operates on.
package normalize

import (
	"github.com/pkg/errors"

	"github.com/opensearch-project/skills-go/pkg/records"
	"github.com/opensearch-project/skills-go/pkg/searchclient"
)

// FromSearchHits turns document hits into records, one per hit, in backend
// order. A hit whose source cannot be decoded fails the whole batch:
// downstream invariants assume every record came from a well-formed source.
func FromSearchHits(hits []searchclient.Hit) ([]*records.Record, error) {
	out := make([]*records.Record, 0, len(hits))
	for i, hit := range hits {
		r, err := records.FromJSONObject(hit.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "normalize: hit %d (_id=%s)", i, hit.ID)
		}
		out = append(out, r)
	}
	return out, nil
}

// FromPPLResult zips named columns to row values, preserving row order.
// Blank column names are skipped. A short row simply leaves trailing fields
// absent, that is not an error.
func FromPPLResult(result *searchclient.PPLResult) []*records.Record {
	out := make([]*records.Record, 0, len(result.Datarows))
	for _, row := range result.Datarows {
		r := records.NewRecord()
		for col, meta := range result.Schema {
			if meta.Name == "" {
				continue
			}
			if col >= len(row) {
				continue
			}
			r.Put(meta.Name, records.FromInterface(row[col]))
		}
		out = append(out, r)
	}
	return out
}
