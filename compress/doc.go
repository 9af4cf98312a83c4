// Package compress provides compression codecs for stored fit reports and other
// encoded payloads.
//
// The package defines three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - format.CompressionNone: pass-through
//   - format.CompressionZstd: best ratio, pooled klauspost/compress encoders
//   - format.CompressionS2: faster, slightly larger output
//   - format.CompressionLZ4: LZ4 frames via pierrec/lz4
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//
//	compressed, err := codec.Compress(doc)
//	if err != nil {
//	    return err
//	}
//
// CompressWithStats additionally reports the original and compressed sizes:
//
//	payload, stats, err := compress.CompressWithStats(format.CompressionS2, doc)
//	fmt.Printf("saved %.1f%%\n", stats.SpaceSavings())
//
// Every codec treats empty input as empty output and all codecs are safe for
// concurrent use.
package compress
