package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstringMax(t *testing.T) {
	assert.Equal(t, "abc", SubstringMax("abc", 10))
	assert.Equal(t, "ab", SubstringMax("abc", 2))
	assert.Equal(t, "", SubstringMax("", 2))
}

func TestStringSliceContains(t *testing.T) {
	assert.True(t, StringSliceContains([]string{"a", "b"}, "b"))
	assert.False(t, StringSliceContains([]string{"a", "b"}, "c"))
	assert.False(t, StringSliceContains(nil, "a"))
}

func TestFirstNotEmpty(t *testing.T) {
	assert.Equal(t, "x", FirstNotEmpty("", "x", "y"))
	assert.Equal(t, "", FirstNotEmpty("", ""))
}

func TestToJsonString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ToJsonString(map[string]int{"a": 1}))
}
