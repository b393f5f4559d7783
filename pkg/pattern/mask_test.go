package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask_FixedAlphabet(t *testing.T) {
	m, err := NewMasker("")
	require.NoError(t, err)

	assert.Equal(t, "   /", m.Mask("ERROR 404 at /a"))
	assert.Equal(t, "   /", m.Mask("ERROR 500 at /b"))
	assert.Equal(t, " ", m.Mask("INFO ok"))

	// punctuation, whitespace and non-ASCII survive in order
	assert.Equal(t, "[] -- :=, 错误", m.Mask("[x1] -- err:code=42, 错误"))
	assert.Equal(t, "", m.Mask("abcXYZ019"))
	assert.Equal(t, "", m.Mask(""))
}

func TestMask_Idempotent(t *testing.T) {
	m, err := NewMasker("")
	require.NoError(t, err)
	for _, s := range []string{
		"ERROR 404 at /a",
		"2023-01-01 12:00:00,123 [pool-1] ERROR c.f.Bar - oops",
		"{\"k\":\"v\"}",
		"",
		"纯文本 no ascii 123",
	} {
		once := m.Mask(s)
		assert.Equal(t, once, m.Mask(once), "mask must be idempotent for %q", s)
	}
}

func TestMask_CustomExpression(t *testing.T) {
	m, err := NewMasker(`\d+`)
	require.NoError(t, err)
	assert.Equal(t, "ERROR  at /a", m.Mask("ERROR 404 at /a"))

	once := m.Mask("req 123 took 45ms")
	assert.Equal(t, once, m.Mask(once))
}

func TestNewMasker_Invalid(t *testing.T) {
	_, err := NewMasker(`([`)
	assert.Error(t, err)
}
