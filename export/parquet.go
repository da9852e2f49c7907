package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/blobstore"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ErrUnknownCompression is returned for unsupported Parquet codecs.
var ErrUnknownCompression = errors.New("export: unknown compression")

// Row is the Parquet schema of one instrument's statistics.
type Row struct {
	Instrument      int64   `json:"instrument" parquet:"name=instrument, type=INT64"`
	Count           int64   `json:"count" parquet:"name=count, type=INT64"`
	NetSize         int64   `json:"net_size" parquet:"name=net_size, type=INT64"`
	Volume          int64   `json:"volume" parquet:"name=volume, type=INT64"`
	VWAPAccumulator float64 `json:"vwap_accumulator" parquet:"name=vwap_accumulator, type=DOUBLE"`
	VWAP            float64 `json:"vwap" parquet:"name=vwap, type=DOUBLE"`
	LastPrice       float32 `json:"last_price" parquet:"name=last_price, type=FLOAT"`
}

// Rows converts t into rows sorted by instrument.
func Rows(t aggregate.Table) []Row {
	keys := t.Keys()
	rows := make([]Row, 0, len(keys))
	for _, id := range keys {
		s := t[id]
		rows = append(rows, Row{
			Instrument:      int64(id),
			Count:           int64(s.Count),  //nolint:gosec // counts are bounded by file size
			NetSize:         s.NetSize,
			Volume:          int64(s.Volume), //nolint:gosec // bounded by count * MaxInt32
			VWAPAccumulator: s.VWAPAccumulator,
			VWAP:            s.VWAP(),
			LastPrice:       s.LastPrice,
		})
	}
	return rows
}

// Option configures an export.
type Option func(*options)

type options struct {
	codec parquet.CompressionCodec
	err   error
}

// WithCompression selects the Parquet page codec: "snappy" (default), "gzip",
// "zstd" or "none". An unknown name makes the export fail with
// ErrUnknownCompression.
func WithCompression(name string) Option {
	return func(o *options) {
		c, err := ParseCompression(name)
		if err != nil {
			o.err = err
			return
		}
		o.codec = c
	}
}

// ParseCompression maps a codec name to its Parquet constant.
func ParseCompression(name string) (parquet.CompressionCodec, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return parquet.CompressionCodec_SNAPPY, nil
	case "gzip":
		return parquet.CompressionCodec_GZIP, nil
	case "zstd":
		return parquet.CompressionCodec_ZSTD, nil
	case "none", "uncompressed":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	}
	return parquet.CompressionCodec_UNCOMPRESSED, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// memFile is a write-only source.ParquetFile over a buffer.
type memFile struct {
	buffer *bytes.Buffer
}

func newMemFile() *memFile {
	return &memFile{buffer: &bytes.Buffer{}}
}

func (m *memFile) Create(string) (source.ParquetFile, error) { return m, nil }
func (m *memFile) Open(string) (source.ParquetFile, error)   { return m, nil }
func (m *memFile) Seek(int64, int) (int64, error)            { return int64(m.buffer.Len()), nil }
func (m *memFile) Read([]byte) (int, error)                  { return 0, errors.New("export: read not supported") }
func (m *memFile) Write(b []byte) (int, error)               { return m.buffer.Write(b) }
func (m *memFile) Close() error                              { return nil }

// Parquet encodes t as a Parquet file.
func Parquet(t aggregate.Table, opts ...Option) ([]byte, error) {
	o := options{codec: parquet.CompressionCodec_SNAPPY}
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	mem := newMemFile()
	pw, err := writer.NewParquetWriter(mem, new(Row), 1)
	if err != nil {
		return nil, fmt.Errorf("export: new parquet writer: %w", err)
	}
	pw.CompressionType = o.codec

	for _, row := range Rows(t) {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("export: write row %d: %w", row.Instrument, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("export: finalize parquet: %w", err)
	}
	return mem.buffer.Bytes(), nil
}

// WriteParquet encodes t and writes it to w.
func WriteParquet(w io.Writer, t aggregate.Table, opts ...Option) error {
	data, err := Parquet(t, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ToBlob encodes t and stores it under name.
func ToBlob(ctx context.Context, store blobstore.BlobStore, name string, t aggregate.Table, opts ...Option) error {
	data, err := Parquet(t, opts...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("export: put %s: %w", name, err)
	}
	return nil
}
