package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", io.EOF, KindUnknown},
		{"open", fmt.Errorf("%w: missing.json: %w", ErrOpen, io.ErrUnexpectedEOF), KindOpen},
		{"read", fmt.Errorf("%w: boom", ErrRead), KindRead},
		{"truncated", ErrUnexpectedEOF, KindTruncated},
		{"decode", fmt.Errorf("%w: %w", ErrDecode, MissingField("timestamp")), KindDecode},
		{"element", &ElementError{Index: 3, Kind: KindTruncated, Err: io.ErrUnexpectedEOF}, KindTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestElementError(t *testing.T) {
	cause := InvalidValue("severity", "bogus")
	err := error(&ElementError{Index: 7, Kind: KindDecode, Err: cause})

	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, ErrInvalidValue)
	require.NotErrorIs(t, err, ErrUnexpectedEOF)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "severity", fe.Field)
	assert.Equal(t, "bogus", fe.Value)

	assert.Equal(t, `element 7: decode failure: field "severity": invalid value "bogus"`, err.Error())
}

func TestElementError_NoCause(t *testing.T) {
	err := &ElementError{Index: 0, Kind: KindTruncated}

	assert.Equal(t, "element 0: unexpected end of input", err.Error())
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestFieldError(t *testing.T) {
	assert.Equal(t, `field "logName": missing field`, MissingField("logName").Error())
	assert.Equal(t, `field "labels": invalid type "[1]"`, InvalidType("labels", "[1]").Error())
	assert.ErrorIs(t, MissingField("logName"), ErrMissingField)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "open", KindOpen.String())
	assert.Equal(t, "read", KindRead.String())
	assert.Equal(t, "truncated", KindTruncated.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.Nil(t, KindUnknown.Sentinel())
}
