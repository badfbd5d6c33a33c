// Package stream reads the elements of a top-level JSON array one at a time.
//
// A log export is a single JSON array that may be far larger than memory. Reader
// finds the array's structural bytes ('[', ',' and ']') with a lookahead Source and
// hands each element to a ValueDecoder, so memory use is bounded by the largest
// element rather than by the document.
//
// # Usage
//
//	r, err := stream.NewReader[record.LogEntry](file, nil)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for entry, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(entry.TextPayload)
//	}
//
// # Byte Source
//
// Source is itself an io.Reader over its unconsumed lookahead followed by the
// underlying reader, and Reader exposes the same capability. A decoder that reads
// ahead returns its surplus with the value and Source puts it back, so no input byte
// is read twice.
//
// # Lifecycle
//
//	NotStarted --'['--> Started --']'--> Finished
//	     |                 |
//	     +-- EOF/error ----+--> Finished
//
// Finished is terminal: Next returns io.EOF from then on.
package stream
