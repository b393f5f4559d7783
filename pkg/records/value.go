/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package records

import (
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Kind enumerates the value shapes a backend can hand us.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

type (
	// Value is a tagged union over the loosely-typed field values found in
	// search results. Code that needs a particular shape switches on Kind
	// instead of doing interface{} type casts at every use site.
	Value struct {
		kind Kind
		str  string
		num  float64
		b    bool
		list []Value
		m    *Record
	}
)

func Null() Value                { return Value{kind: KindNull} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Number(n float64) Value     { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func List(items []Value) Value   { return Value{kind: KindList, list: items} }
func Map(record *Record) Value   { return Value{kind: KindMap, m: record} }

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload. ok is false for any other kind, numbers are
// deliberately not stringified here.
func (v Value) Str() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

func (v Value) Num() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return 0, false
}

func (v Value) Boolean() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

func (v Value) Items() []Value {
	return v.list
}

func (v Value) Record() *Record {
	return v.m
}

// Interface converts the value back to the generic representation used by
// jsonpath lookups and JSON serialization.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}
		return out
	case KindMap:
		return v.m.Interface()
	default:
		return nil
	}
}

// FromInterface builds a Value from a decoded JSON value. Unknown types
// degrade to their string form via cast rather than failing.
func FromInterface(in interface{}) Value {
	switch t := in.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, FromInterface(item))
		}
		return List(items)
	case map[string]interface{}:
		r := NewRecord()
		for k, v := range t {
			r.Put(k, FromInterface(v))
		}
		return Map(r)
	default:
		return String(cast.ToString(t))
	}
}

func fromGJSON(res gjson.Result) Value {
	switch {
	case res.Type == gjson.String:
		return String(res.Str)
	case res.Type == gjson.Number:
		return Number(res.Num)
	case res.Type == gjson.True:
		return Bool(true)
	case res.Type == gjson.False:
		return Bool(false)
	case res.IsArray():
		arr := res.Array()
		items := make([]Value, 0, len(arr))
		for _, item := range arr {
			items = append(items, fromGJSON(item))
		}
		return List(items)
	case res.IsObject():
		r := NewRecord()
		res.ForEach(func(key, value gjson.Result) bool {
			r.Put(key.String(), fromGJSON(value))
			return true
		})
		return Map(r)
	default:
		return Null()
	}
}
