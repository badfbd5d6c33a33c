package record

import (
	"encoding/json"
	"testing"

	"github.com/arloliu/logdump/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels_PreservesOrder(t *testing.T) {
	var l Labels
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":2,"m":{"k":[1,2]}}`), &l))

	assert.Equal(t, []string{"z", "a", "m"}, l.Keys())
	assert.Equal(t, 3, l.Len())

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":{"k":[1,2]}}`, string(out))
}

func TestLabels_RepeatedKey(t *testing.T) {
	var l Labels
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), &l))

	assert.Equal(t, []string{"a", "b"}, l.Keys())
	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", string(v))
}

func TestLabels_Lookup(t *testing.T) {
	l := Labels{
		{Key: "zone", Value: json.RawMessage(`"us-east1-b"`)},
		{Key: "replicas", Value: json.RawMessage(`3`)},
	}

	zone, ok := l.Text("zone")
	require.True(t, ok)
	assert.Equal(t, "us-east1-b", zone)

	_, ok = l.Text("replicas")
	assert.False(t, ok, "non-string values have no text")

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestLabels_Empty(t *testing.T) {
	var l Labels
	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{}`), &l))
	assert.Equal(t, 0, l.Len())
}

func TestLabels_Invalid(t *testing.T) {
	for _, doc := range []string{`[]`, `"x"`, `12`} {
		var l Labels
		err := json.Unmarshal([]byte(doc), &l)
		require.ErrorIs(t, err, errs.ErrInvalidType, doc)
	}
}
