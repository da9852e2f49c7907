// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync/stat capabilities
//   - [FileSystem]: filesystem operations (open, stat, rename, ...)
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects failed opens, failed stats, short reads,
//     misreported sizes and failed writes
//
// Production code should use fs.Default:
//
//	f, err := fs.Default.Open(path)
//
// Tests can inject [FaultyFS] to simulate a file that shrinks after stat:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("orders", fs.Fault{ShortReadAfter: 48, FailAfterBytes: -1})
//
// The package deliberately takes no context.Context: local file operations are not
// interruptible at the syscall level. Remote reads go through blobstore.Blob.
package fs
