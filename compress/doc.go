// Package compress provides streaming compression codecs for log dumps.
//
// Exported log dumps are large and are usually archived compressed. The codecs in
// this package wrap an io.Reader or io.Writer so a dump can be decoded straight
// from its compressed form without an intermediate file.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    NewWriter(w io.Writer) (io.WriteCloser, error)
//	}
//
//	type Decompressor interface {
//	    NewReader(r io.Reader) (io.ReadCloser, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone): plain JSON, bytes pass through unchanged.
//
// **Gzip** (format.CompressionGzip): klauspost/compress/gzip. The common format of
// archived exports (`.json.gz`).
//
// **Zstandard** (format.CompressionZstd): klauspost/compress/zstd by default, or the
// libzstd binding from valyala/gozstd when built with `-tags gozstd` and cgo.
//
// **S2** (format.CompressionS2): klauspost/compress/s2 stream format. Snappy framed
// streams are also accepted by the reader.
//
// **LZ4** (format.CompressionLZ4): pierrec/lz4/v4 frame format.
//
// # Detection
//
// Detect sniffs the leading magic bytes of a stream and returns a reader that replays
// them, so detection never consumes input:
//
//	ct, r, err := compress.Detect(file)
//	if err != nil {
//	    return err
//	}
//	codec, _ := compress.GetCodec(ct)
//	rc, err := codec.NewReader(r)
//
// NewDetectingReader combines both steps.
//
// # Thread Safety
//
// Codec values are stateless and safe for concurrent use. The readers and writers
// they return are not.
package compress
