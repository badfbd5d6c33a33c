package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/internal/hash"
)

// Wire keys of a log entry object.
const (
	KeyTextPayload = "textPayload"
	KeyTimestamp   = "timestamp"
	KeySeverity    = "severity"
	KeyLogName     = "logName"
	KeyLabels      = "labels"
)

var jsonNull = []byte("null")

// LogEntry is one decoded record of a log dump.
type LogEntry struct {
	TextPayload string `json:"textPayload"`
	// Timestamp is kept exactly as exported; it is not parsed.
	Timestamp string   `json:"timestamp"`
	Severity  Severity `json:"severity"`
	LogName   string   `json:"logName"`
	Labels    Labels   `json:"labels"`
}

// Fingerprint identifies the entry by log name, timestamp, severity and payload.
// Labels are not part of the identity.
func (e LogEntry) Fingerprint() uint64 {
	return hash.Fields(e.LogName, e.Timestamp, e.Severity.String(), e.TextPayload)
}

// UnmarshalJSON decodes a log entry object.
//
// Keys are matched exactly. An absent key and a JSON null are treated alike:
// optional fields keep their zero value and required fields fail with
// errs.ErrMissingField.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: log entry must be a JSON object, got %s", errs.ErrInvalidType, valueKind(data))
	}
	if fields == nil {
		return fmt.Errorf("%w: log entry must be a JSON object, got null", errs.ErrInvalidType)
	}

	var entry LogEntry
	var err error

	if entry.TextPayload, _, err = stringField(fields, KeyTextPayload); err != nil {
		return err
	}

	var ok bool
	if entry.Timestamp, ok, err = stringField(fields, KeyTimestamp); err != nil {
		return err
	} else if !ok {
		return errs.MissingField(KeyTimestamp)
	}

	raw, ok := field(fields, KeySeverity)
	if !ok {
		return errs.MissingField(KeySeverity)
	}
	if err := entry.Severity.UnmarshalJSON(raw); err != nil {
		return err
	}

	if entry.LogName, ok, err = stringField(fields, KeyLogName); err != nil {
		return err
	} else if !ok {
		return errs.MissingField(KeyLogName)
	}

	if raw, ok := field(fields, KeyLabels); ok {
		if err := entry.Labels.UnmarshalJSON(raw); err != nil {
			return err
		}
	}

	*e = entry

	return nil
}

// field returns the raw value of key, treating null as absent.
func field(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(raw, jsonNull) {
		return nil, false
	}

	return raw, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := field(fields, key)
	if !ok {
		return "", false, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, errs.InvalidType(key, string(raw))
	}

	return s, true, nil
}

// valueKind names the JSON type of a raw value for error messages.
func valueKind(data []byte) string {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return "nothing"
	}

	switch data[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
