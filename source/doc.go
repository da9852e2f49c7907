// Package source owns the bytes behind a record view.
//
// A Source is created from a file (or blob) and exposes its contents as a
// view.View over fixed-size records. Three flavours exist:
//
//   - Mapped maps the file read-only into the address space. Nothing is copied
//     and pages are faulted in by the kernel as records are touched.
//   - Buffered reads the whole file into a private 64-byte aligned buffer.
//     Use it when the file may change underneath the reader, when it arrives
//     compressed or over the network, or when mapping is unavailable.
//   - Pinned views the bytes of a blob that already lives in memory, such as
//     a LocalStore blob (mapped) or a MemoryStore blob, and closes the blob
//     when it is closed.
//
// All validation happens at construction: a file whose size is not a whole
// number of records fails with a *LayoutError, and a read that returns fewer
// bytes than the file size fails with a *ShortReadError. A constructed source
// is immutable and may be read from many goroutines. Views obtained from a
// source must not be used after Close.
package source
