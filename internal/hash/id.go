package hash

import "github.com/cespare/xxhash/v2"

// fieldSeparator keeps ("ab", "c") and ("a", "bc") from hashing alike.
var fieldSeparator = []byte{0x1f}

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fields computes the xxHash64 of the given fields joined by a unit separator.
// A single field hashes the same as ID.
func Fields(fields ...string) uint64 {
	if len(fields) == 1 {
		return ID(fields[0])
	}

	d := xxhash.New()
	for i, f := range fields {
		if i > 0 {
			_, _ = d.Write(fieldSeparator)
		}
		_, _ = d.WriteString(f)
	}

	return d.Sum64()
}
