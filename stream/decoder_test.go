package stream

import (
	"strings"
	"testing"

	"github.com/arloliu/logdump/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDecoder_ReturnsOverread(t *testing.T) {
	value, rest, err := JSONDecoder[map[string]int]{}.DecodeValue(strings.NewReader(`{"a":1} , {"b":2}]`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, value)
	assert.Equal(t, ` , {"b":2}]`, string(rest))
}

func TestJSONDecoder_SyntaxError(t *testing.T) {
	_, _, err := JSONDecoder[map[string]int]{}.DecodeValue(strings.NewReader(`{"a" 1}`))
	require.ErrorIs(t, err, errs.ErrSyntax)
	assert.Contains(t, err.Error(), "at offset")
}

func TestJSONDecoder_UseNumber(t *testing.T) {
	value, _, err := JSONDecoder[any]{UseNumber: true}.DecodeValue(strings.NewReader(`12345678901234567890`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", value.(interface{ String() string }).String())
}
