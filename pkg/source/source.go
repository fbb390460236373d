// Package source opens ontology files for streaming, choosing between
// compressed and plain framing by looking at the content rather than the
// file name.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the framing of a source.
type Compression uint8

// Supported framings.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// String returns the framing name.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	case CompressionNone:
		return "none"
	default:
		return "unknown"
	}
}

// Frame magic numbers.
var (
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// magicLen is the number of leading bytes inspected for frame magic.
const magicLen = 4

// ErrNotRegular is returned for paths that are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// Source is a byte stream over a possibly compressed file. Offset counts raw
// file bytes, so Offset/Size is a progress ratio regardless of framing.
type Source struct {
	file        *os.File
	counter     *countingReader
	reader      io.Reader
	closeFrame  func()
	size        int64
	compression Compression
}

// Open opens path. Gzip is tried first by opening a gzip stream; if the header
// check fails the file is rewound and inspected for zstd and lz4 frame magic,
// falling back to plain bytes.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fmt.Errorf("stat source: %w", err)
	}

	if !info.Mode().IsRegular() {
		file.Close()

		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	src := &Source{
		file:    file,
		counter: &countingReader{reader: file},
		size:    info.Size(),
	}

	detectErr := src.detect()
	if detectErr != nil {
		file.Close()

		return nil, detectErr
	}

	return src, nil
}

func (src *Source) detect() error {
	gz, gzErr := gzip.NewReader(src.counter)
	if gzErr == nil {
		src.reader = gz
		src.compression = CompressionGzip
		src.closeFrame = func() { gz.Close() }

		return nil
	}

	rewindErr := src.rewind()
	if rewindErr != nil {
		return rewindErr
	}

	head := make([]byte, magicLen)

	n, readErr := io.ReadFull(src.file, head)
	if readErr != nil && !errors.Is(readErr, io.ErrUnexpectedEOF) && !errors.Is(readErr, io.EOF) {
		return fmt.Errorf("read source header: %w", readErr)
	}

	rewindErr = src.rewind()
	if rewindErr != nil {
		return rewindErr
	}

	head = head[:n]

	switch {
	case bytes.Equal(head, magicZstd):
		dec, err := zstd.NewReader(src.counter, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("open zstd stream: %w", err)
		}

		src.reader = dec
		src.compression = CompressionZstd
		src.closeFrame = dec.Close
	case bytes.Equal(head, magicLZ4):
		src.reader = lz4.NewReader(src.counter)
		src.compression = CompressionLZ4
	default:
		src.reader = src.counter
		src.compression = CompressionNone
	}

	return nil
}

func (src *Source) rewind() error {
	_, err := src.file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("rewind source: %w", err)
	}

	src.counter.n = 0

	return nil
}

// Read reads decompressed bytes.
func (src *Source) Read(p []byte) (int, error) {
	return src.reader.Read(p) //nolint:wrapcheck // io.Reader contract.
}

// Size returns the raw file size in bytes.
func (src *Source) Size() int64 {
	return src.size
}

// Offset returns the raw file bytes consumed so far.
func (src *Source) Offset() int64 {
	return src.counter.n
}

// Compression returns the detected framing.
func (src *Source) Compression() Compression {
	return src.compression
}

// Close releases the decoder and the file. Closing aborts a parse in
// progress: the next read fails.
func (src *Source) Close() error {
	if src.closeFrame != nil {
		src.closeFrame()
	}

	err := src.file.Close()
	if err != nil {
		return fmt.Errorf("close source: %w", err)
	}

	return nil
}

type countingReader struct {
	reader io.Reader
	n      int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.n += int64(n)

	return n, err //nolint:wrapcheck // io.Reader contract.
}
