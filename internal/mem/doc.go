// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Heap buffers handed out here start on a 64-byte boundary, which satisfies the
// alignment of every fixed-size record type and keeps record 0 on a cache line.
package mem
