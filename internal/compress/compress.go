// Package compress stores document bodies as XZ/LZMA streams, matching the
// round-trip contract decompress(compress(t)) == t for any text.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// ErrCorrupt reports compressed data that cannot be decoded. The store never
// attempts repair.
var ErrCorrupt = errors.New("corrupt compressed data")

// XZ is a reversible byte compressor for document bodies.
type XZ struct{}

func (XZ) Compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("create xz writer: %w", err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("compress text: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish xz stream: %w", err)
	}
	return buf.Bytes(), nil
}

func (XZ) Decompress(data []byte) (string, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return string(text), nil
}
