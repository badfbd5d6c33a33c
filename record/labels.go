package record

import (
	"bytes"
	"encoding/json"

	"github.com/arloliu/logdump/errs"
)

const labelsField = "labels"

// Label is one key of the labels object with its raw JSON value.
type Label struct {
	Key   string
	Value json.RawMessage
}

// Labels is an insertion-ordered mapping from label keys to arbitrary JSON values.
// A repeated key keeps its first position and its last value.
type Labels []Label

// Len returns the number of labels.
func (l Labels) Len() int {
	return len(l)
}

// Get returns the raw value stored under key.
func (l Labels) Get(key string) (json.RawMessage, bool) {
	for _, label := range l {
		if label.Key == key {
			return label.Value, true
		}
	}

	return nil, false
}

// Text returns the value under key when it is a JSON string.
func (l Labels) Text(key string) (string, bool) {
	raw, ok := l.Get(key)
	if !ok {
		return "", false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false
	}

	return text, true
}

// Keys returns the label keys in order.
func (l Labels) Keys() []string {
	keys := make([]string, len(l))
	for i, label := range l {
		keys[i] = label.Key
	}

	return keys
}

// MarshalJSON encodes the labels as an object, preserving order.
func (l Labels) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(label.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(label.Value)
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
// A JSON null leaves the labels untouched.
func (l *Labels) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errs.InvalidType(labelsField, string(data))
	}
	if tok == nil {
		return nil
	}
	if tok != json.Delim('{') {
		return errs.InvalidType(labelsField, string(data))
	}

	labels := make(Labels, 0, len(*l))
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errs.InvalidType(labelsField, string(data))
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return errs.InvalidType(labelsField, string(data))
		}

		if i, seen := index[key]; seen {
			labels[i].Value = value
			continue
		}
		index[key] = len(labels)
		labels = append(labels, Label{Key: key, Value: value})
	}

	*l = labels

	return nil
}
