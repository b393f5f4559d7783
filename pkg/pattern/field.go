/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package pattern

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/opensearch-project/skills-go/pkg/records"
)

// SelectField resolves the field holding the text to mine. An explicitly
// configured name wins unconditionally but must exist in the first record
// and hold a string. Otherwise the longest string field of the first record
// is chosen; ties keep the first field in record order.
func SelectField(first *records.Record, configured string) (string, error) {
	if configured != "" {
		v, ok := first.GetPath(configured)
		if !ok {
			return "", errors.Errorf("pattern field %q not found in the first record", configured)
		}
		if _, isStr := v.Str(); !isStr {
			return "", errors.Errorf("pattern field %q is not a string value", configured)
		}
		return configured, nil
	}

	selected := ""
	longest := -1
	for _, f := range first.Fields() {
		s, ok := f.Value.Str()
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(s); n > longest {
			longest = n
			selected = f.Name
		}
	}
	if longest < 0 {
		return "", errors.New("no string field found in the first record to extract patterns from")
	}
	return selected, nil
}
