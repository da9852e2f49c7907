package compress

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression format.
type Kind uint8

const (
	None Kind = iota
	Zstd
	LZ4
	S2
)

// ErrUnknownKind is returned for unsupported compression names or values.
var ErrUnknownKind = errors.New("compress: unknown kind")

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case S2:
		return "s2"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Ext returns the conventional file extension, including the dot ("" for None).
func (k Kind) Ext() string {
	switch k {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	case S2:
		return ".s2"
	default:
		return ""
	}
}

// ParseKind parses the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "s2", "snappy":
		return S2, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindFromPath infers the compression kind from a file extension.
// Unrecognised extensions are treated as uncompressed.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	case ".s2", ".sz":
		return S2
	default:
		return None
	}
}

// NewReader returns a decompressing reader over r.
// Closing it releases decoder resources but does not close r.
func NewReader(k Kind, r io.Reader) (io.ReadCloser, error) {
	switch k {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		// Single-threaded decoding keeps the read order trivially sequential.
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
}

// NewWriter returns a compressing writer over w.
// Close flushes the compressed stream but does not close w.
func NewWriter(k Kind, w io.Writer) (io.WriteCloser, error) {
	switch k {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd writer: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case S2:
		return s2.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
