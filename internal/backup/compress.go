package backup

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Format is a backup compression format.
type Format string

// Supported formats
const (
	FormatNone Format = "none"
	FormatGzip Format = "gzip"
	FormatZstd Format = "zstd"
	FormatLZ4  Format = "lz4"
	FormatXZ   Format = "xz"
)

var extensions = map[Format]string{
	FormatNone: "",
	FormatGzip: ".gz",
	FormatZstd: ".zst",
	FormatLZ4:  ".lz4",
	FormatXZ:   ".xz",
}

// ParseFormat parses a format name. The empty string means FormatNone.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatNone, nil
	}
	f := Format(strings.ToLower(s))
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("unknown backup format: %s", s)
	}
	return f, nil
}

// Ext returns the file name extension of the format, including the dot.
func (f Format) Ext() string {
	return extensions[f]
}

// FormatFromName picks the format from a file name's extension.
// Names without a known extension are FormatNone.
func FormatFromName(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	for f, e := range extensions {
		if e != "" && e == ext {
			return f
		}
	}
	return FormatNone
}

// Compress compresses data with the given format.
func Compress(data []byte, format Format) ([]byte, error) {
	var buf bytes.Buffer

	var w io.WriteCloser
	var err error
	switch format {
	case FormatNone:
		return data, nil
	case FormatGzip:
		w, err = gzip.NewWriterLevel(&buf, gzip.BestCompression)
	case FormatZstd:
		w, err = zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case FormatLZ4:
		w = lz4.NewWriter(&buf)
	case FormatXZ:
		w, err = xz.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("unknown backup format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s writer: %w", format, err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing %s data: %w", format, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing %s writer: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, format Format) ([]byte, error) {
	in := bytes.NewReader(data)

	var r io.Reader
	switch format {
	case FormatNone:
		return data, nil
	case FormatGzip:
		gr, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gr.Close()
		r = gr
	case FormatZstd:
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	case FormatLZ4:
		r = lz4.NewReader(in)
	case FormatXZ:
		xr, err := xz.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		r = xr
	default:
		return nil, fmt.Errorf("unknown backup format: %s", format)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s data: %w", format, err)
	}
	return out, nil
}
