package rds

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Compression selects the container compression used by Write.
type Compression int

const (
	Gzip Compression = iota
	NoCompression
	XZ
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// IsSerialized reports whether data looks like an R serialization stream,
// compressed or not.
func IsSerialized(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, gzipMagic), bytes.HasPrefix(data, bzip2Magic), bytes.HasPrefix(data, xzMagic):
		return true
	case bytes.HasPrefix(data, []byte("X\n")), bytes.HasPrefix(data, []byte("B\n")):
		return true
	case bytes.HasPrefix(data, []byte("RDX")), bytes.HasPrefix(data, []byte("RDB")):
		return true
	}
	return false
}

func decompress(r io.Reader) (io.Reader, error) {
	br := newBufferedReader(r)
	magic, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("rds: peek magic: %w", err)
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("rds: open gzip stream: %w", err)
		}
		return newBufferedReader(zr), nil
	case bytes.HasPrefix(magic, bzip2Magic):
		return newBufferedReader(bzip2.NewReader(br)), nil
	case bytes.HasPrefix(magic, xzMagic):
		zr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("rds: open xz stream: %w", err)
		}
		return newBufferedReader(zr), nil
	}
	return br, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compress(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case Gzip:
		return gzip.NewWriter(w), nil
	case XZ:
		zw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("rds: open xz stream: %w", err)
		}
		return zw, nil
	case NoCompression:
		return nopCloser{w}, nil
	}
	return nil, fmt.Errorf("rds: unknown compression %d", compression)
}
