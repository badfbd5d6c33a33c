package stream

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/arloliu/logdump/record"
)

func BenchmarkReader_Entries(b *testing.B) {
	for _, n := range []int{100, 10000} {
		input := entryArray(n)

		b.Run(fmt.Sprintf("entries_%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()
			for b.Loop() {
				r, err := NewReader[record.LogEntry](strings.NewReader(input), nil)
				if err != nil {
					b.Fatal(err)
				}
				for {
					if _, err := r.Next(); err != nil {
						if err != io.EOF {
							b.Fatal(err)
						}
						break
					}
				}
				_ = r.Close()
			}
		})
	}
}

func BenchmarkSource_SeekByte(b *testing.B) {
	input := strings.Repeat(" ", 64*1024) + "["
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		src := NewSource(strings.NewReader(input), 0)
		if _, err := src.SeekByte("["); err != nil {
			b.Fatal(err)
		}
		src.Release()
	}
}
