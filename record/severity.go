package record

import (
	"encoding/json"
	"strings"

	"github.com/arloliu/logdump/errs"
)

// Severity is the closed set of log severities, ordered from least to most severe.
type Severity uint8

const (
	SeverityDefault Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityNotice
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityAlert
	SeverityEmergency
)

const severityField = "severity"

var severityNames = [...]string{
	SeverityDefault:   "DEFAULT",
	SeverityDebug:     "DEBUG",
	SeverityInfo:      "INFO",
	SeverityNotice:    "NOTICE",
	SeverityWarning:   "WARNING",
	SeverityError:     "ERROR",
	SeverityCritical:  "CRITICAL",
	SeverityAlert:     "ALERT",
	SeverityEmergency: "EMERGENCY",
}

// severityTable is the textual mapping accepted from input.
// SeverityAlert has no entry: "alert" is rejected until that mapping is confirmed.
var severityTable = [...]struct {
	name     string
	severity Severity
}{
	{"default", SeverityDefault},
	{"debug", SeverityDebug},
	{"info", SeverityInfo},
	{"notice", SeverityNotice},
	{"warning", SeverityWarning},
	{"error", SeverityError},
	{"critical", SeverityCritical},
	{"emergency", SeverityEmergency},
}

// Severities returns every severity variant in ascending order.
func Severities() []Severity {
	return []Severity{
		SeverityDefault, SeverityDebug, SeverityInfo, SeverityNotice, SeverityWarning,
		SeverityError, SeverityCritical, SeverityAlert, SeverityEmergency,
	}
}

// ParseSeverity maps text to a Severity, ignoring case.
//
// Returns an *errs.FieldError wrapping errs.ErrInvalidValue for text outside the table,
// including "alert".
func ParseSeverity(text string) (Severity, error) {
	for _, entry := range severityTable {
		if strings.EqualFold(text, entry.name) {
			return entry.severity, nil
		}
	}

	return SeverityDefault, errs.InvalidValue(severityField, text)
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}

	return "UNKNOWN"
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

// MarshalText encodes the severity as its upper-case name.
func (s Severity) MarshalText() ([]byte, error) {
	if int(s) >= len(severityNames) {
		return nil, errs.InvalidValue(severityField, s.String())
	}

	return []byte(s.String()), nil
}

// UnmarshalJSON decodes a JSON string through ParseSeverity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return errs.InvalidType(severityField, string(data))
	}

	sev, err := ParseSeverity(text)
	if err != nil {
		return err
	}
	*s = sev

	return nil
}
