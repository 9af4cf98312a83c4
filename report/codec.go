package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/mandv/compress"
	"github.com/arloliu/mandv/errs"
	"github.com/arloliu/mandv/format"
	"github.com/arloliu/mandv/internal/pool"
)

// Marshal encodes rep as an indented JSON or YAML document.
func Marshal(rep Report, enc format.EncodingType) ([]byte, error) {
	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	if err := encode(buf, rep, enc); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

func encode(w io.Writer, rep Report, enc format.EncodingType) error {
	switch enc {
	case format.EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")

		return e.Encode(rep)
	case format.EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(rep); err != nil {
			return err
		}

		return e.Close()
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnknownEncoding, enc)
	}
}

// Unmarshal decodes a JSON or YAML document and validates it.
func Unmarshal(data []byte, enc format.EncodingType) (Report, error) {
	var rep Report

	switch enc {
	case format.EncodingJSON:
		if err := json.Unmarshal(data, &rep); err != nil {
			return Report{}, fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
		}
	case format.EncodingYAML:
		if err := yaml.Unmarshal(data, &rep); err != nil {
			return Report{}, fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
		}
	default:
		return Report{}, fmt.Errorf("%w: %s", errs.ErrUnknownEncoding, enc)
	}

	if err := rep.Validate(); err != nil {
		return Report{}, err
	}

	return rep, nil
}

// Write encodes rep, compresses the document and writes it to w.
//
// Parameters:
//   - w: Destination writer
//   - rep: Report to write
//   - enc: Document encoding (format.EncodingJSON or format.EncodingYAML)
//   - ct: Compression applied to the whole document
//
// Returns:
//   - compress.Stats: Document sizes before and after compression
//   - error: Encoding, compression or write error
//
// Example:
//
//	rep, _ := report.New(result)
//	stats, err := report.Write(f, rep, format.EncodingYAML, format.CompressionZstd)
func Write(w io.Writer, rep Report, enc format.EncodingType, ct format.CompressionType) (compress.Stats, error) {
	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	if err := encode(buf, rep, enc); err != nil {
		return compress.Stats{}, err
	}

	// payload may alias buf for CompressionNone, so it is written before buf returns to the pool
	payload, stats, err := compress.CompressWithStats(ct, buf.Bytes())
	if err != nil {
		return compress.Stats{}, err
	}

	if _, err := w.Write(payload); err != nil {
		return compress.Stats{}, fmt.Errorf("write report: %w", err)
	}

	return stats, nil
}

// Read reads a document written by Write with the same encoding and compression.
func Read(r io.Reader, enc format.EncodingType, ct format.CompressionType) (Report, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return Report{}, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}

	doc, err := codec.Decompress(payload)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}

	return Unmarshal(doc, enc)
}
