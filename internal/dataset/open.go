package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies the encoding of a dataset file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DetectFormat infers the format from path, ignoring a trailing .gz or .zst.
func DetectFormat(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".zst")
	switch filepath.Ext(base) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("dataset: cannot infer format of %s (want .csv or .json, optionally .gz/.zst)", path)
	}
}

// open returns a reader over path's contents, decompressing .gz and .zst files.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(lower, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := dec.IOReadCloser()
		return &stackedReader{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// stackedReader closes a decompressor and the file beneath it.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
