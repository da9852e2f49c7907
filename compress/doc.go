// Package compress provides streaming codecs for compressed record files.
//
// Record files are raw concatenations of fixed-size records and compress well,
// so archives are often stored as orders.dat.zst, orders.dat.lz4 or
// orders.dat.s2. These cannot be mapped; the source package decodes them into a
// private buffer instead.
//
//	kind := compress.KindFromPath("orders.dat.zst") // compress.Zstd
//	r, err := compress.NewReader(kind, f)
//	if err != nil { ... }
//	defer r.Close()
//
// Supported kinds:
//   - None: pass-through
//   - Zstd: Zstandard frames (klauspost/compress/zstd)
//   - LZ4: LZ4 frames (pierrec/lz4/v4)
//   - S2: S2/Snappy framed streams (klauspost/compress/s2)
package compress
