package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

func benchPayload() []byte {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range 2000 {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `{"textPayload":"request %d served","timestamp":"2024-05-01T10:00:00Z","severity":"INFO","logName":"projects/demo/logs/web"}`, i)
	}
	sb.WriteString("]")

	return []byte(sb.String())
}

func BenchmarkCodecs_Compress(b *testing.B) {
	data := benchPayload()

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			var buf bytes.Buffer
			for b.Loop() {
				buf.Reset()
				w, err := codec.NewWriter(&buf)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := w.Write(data); err != nil {
					b.Fatal(err)
				}
				if err := w.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodecs_Decompress(b *testing.B) {
	data := benchPayload()

	for name, codec := range getAllCodecs() {
		var buf bytes.Buffer
		w, err := codec.NewWriter(&buf)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			b.Fatal(err)
		}
		if err := w.Close(); err != nil {
			b.Fatal(err)
		}
		compressed := buf.Bytes()

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				rc, err := codec.NewReader(bytes.NewReader(compressed))
				if err != nil {
					b.Fatal(err)
				}
				if _, err := io.Copy(io.Discard, rc); err != nil {
					b.Fatal(err)
				}
				_ = rc.Close()
			}
		})
	}
}
