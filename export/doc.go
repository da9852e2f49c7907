// Package export writes aggregated tables as Parquet files.
//
// One row is written per instrument, in ascending instrument order. The file
// is assembled in memory and can be written to any io.Writer or stored as a
// blob.
package export
