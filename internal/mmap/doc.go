// Package mmap provides read-only memory-mapped file access for zero-copy record scans.
//
// # Usage
//
//	m, err := mmap.Open("orders.dat")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with a shared read-only mapping, madvise(2) for hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close is idempotent and protected by
// an atomic flag. Callers must ensure no goroutine touches Bytes() after Close returns.
package mmap
