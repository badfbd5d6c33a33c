// Package record defines the log records found in a log-export dump.
//
// A dump produced by tools such as `gcloud logging read --format=json` is a JSON array
// of objects shaped like:
//
//	{
//	  "textPayload": "request served",
//	  "timestamp": "2024-05-01T12:00:00.123456Z",
//	  "severity": "INFO",
//	  "logName": "projects/demo/logs/stdout",
//	  "labels": {"instance": "web-1", "zone": "us-east1-b"}
//	}
//
// LogEntry decodes one such object. Wire keys are matched exactly (camelCase);
// unknown keys are ignored. timestamp, severity and logName are required, textPayload
// and labels default to empty values. Severity names are matched case-insensitively
// against a closed table; "alert" is deliberately absent from that table, so the
// SeverityAlert variant is never produced by decoding.
//
// Decoding failures are *errs.FieldError values naming the field and, where relevant,
// the offending text.
package record
