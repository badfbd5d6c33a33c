package record

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode"

	"github.com/arloliu/logdump/errs"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		text string
		want Severity
	}{
		{"default", SeverityDefault},
		{"DEBUG", SeverityDebug},
		{"Info", SeverityInfo},
		{"nOtIcE", SeverityNotice},
		{"warning", SeverityWarning},
		{"ERROR", SeverityError},
		{"Critical", SeverityCritical},
		{"EMERGENCY", SeverityEmergency},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseSeverity(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeverity_Invalid(t *testing.T) {
	for _, text := range []string{"alert", "ALERT", "Alert", "bogus", "", "warn", " info"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseSeverity(text)
			require.ErrorIs(t, err, errs.ErrInvalidValue)

			var fe *errs.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "severity", fe.Field)
			assert.Equal(t, text, fe.Value)
		})
	}
}

// randomCase flips the case of name according to mask bits.
func randomCase(name string, mask uint64) string {
	var sb strings.Builder
	for i, r := range name {
		if mask&(1<<uint(i%64)) != 0 {
			r = unicode.ToUpper(r)
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

func TestParseSeverity_CaseInsensitiveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every case variant of a table name parses to its severity", prop.ForAll(
		func(idx int, mask uint64) bool {
			entry := severityTable[idx]
			got, err := ParseSeverity(randomCase(entry.name, mask))

			return err == nil && got == entry.severity
		},
		gen.IntRange(0, len(severityTable)-1),
		gen.UInt64(),
	))

	properties.Property("no case variant of alert parses", prop.ForAll(
		func(mask uint64) bool {
			_, err := ParseSeverity(randomCase("alert", mask))

			return err != nil
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "DEFAULT", SeverityDefault.String())
	assert.Equal(t, "ALERT", SeverityAlert.String())
	assert.Equal(t, "EMERGENCY", SeverityEmergency.String())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
	assert.Len(t, Severities(), 9)
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.True(t, SeverityEmergency.AtLeast(SeverityAlert))
}

func TestSeverity_JSON(t *testing.T) {
	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &s))
	assert.Equal(t, SeverityWarning, s)

	err := json.Unmarshal([]byte(`3`), &s)
	require.ErrorIs(t, err, errs.ErrInvalidType)

	err = json.Unmarshal([]byte(`"alert"`), &s)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	out, err := json.Marshal(SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, `"CRITICAL"`, string(out))

	_, err = json.Marshal(Severity(42))
	require.Error(t, err)
}
