/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package records holds the normalized record model shared by the log
// pattern pipeline. A record preserves the field order of its source, which
// matters both for deterministic field selection and for reproducible
// grouping output.
package records

import (
	"github.com/oliveagle/jsonpath"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type (
	Field struct {
		Name  string
		Value Value
	}
	// Record is an ordered field-name to Value mapping. A record is
	// identified by its 0-based position inside one retrieved batch and is
	// treated as immutable once normalization hands it to the pipeline.
	Record struct {
		fields []Field
		index  map[string]int
	}
)

func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Put appends the field, or replaces the value in place when the name is
// already present. Field order is insertion order.
func (r *Record) Put(name string, v Value) {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

func (r *Record) Get(name string) (Value, bool) {
	if i, ok := r.index[name]; ok {
		return r.fields[i].Value, true
	}
	return Value{}, false
}

func (r *Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Fields returns the fields in insertion order. Callers must not mutate the
// returned slice.
func (r *Record) Fields() []Field {
	return r.fields
}

func (r *Record) Len() int {
	return len(r.fields)
}

func (r *Record) Interface() interface{} {
	out := make(map[string]interface{}, len(r.fields))
	for _, f := range r.fields {
		out[f.Name] = f.Value.Interface()
	}
	return out
}

// GetPath resolves name against the record. A plain name is a direct field
// lookup. A dotted name ('a.b.c') that is not itself a field descends into
// nested objects via jsonpath.
func (r *Record) GetPath(name string) (Value, bool) {
	if v, ok := r.Get(name); ok {
		return v, true
	}
	res, err := jsonpath.JsonPathLookup(r.Interface(), "$."+name)
	if err != nil {
		return Value{}, false
	}
	return FromInterface(res), true
}

// FromJSONObject decodes a JSON object into a record, preserving the key
// order of the document.
func FromJSONObject(raw []byte) (*Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("records: invalid json object")
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return nil, errors.New("records: source is not a json object")
	}
	r := NewRecord()
	parsed.ForEach(func(key, value gjson.Result) bool {
		r.Put(key.String(), fromGJSON(value))
		return true
	})
	return r, nil
}
