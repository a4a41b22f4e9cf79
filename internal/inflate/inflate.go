// Package inflate decompresses the DEFLATE compressed regions of a resource.
package inflate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Region inflates a raw DEFLATE stream. Data following the final block is
// ignored, regions are padded up to their page size. An empty region
// inflates to nothing.
func Region(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflating %d bytes: %w", len(data), err)
	}
	return out, nil
}

// Deflate compresses data into a raw DEFLATE stream using the given level.
func Deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("creating deflate writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("deflating %d bytes: %w", len(data), err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing deflate writer: %w", err)
	}
	return buf.Bytes(), nil
}
