// Package compress provides the optional compression step of the SCS codec.
//
// Compressors write into a caller-supplied, fixed-capacity buffer and never
// grow it: running out of room is an error (ErrShortBuffer). Bound reports the
// worst-case output size so callers can size that buffer up front.
//
// Two implementations are provided: LZ4 frames (github.com/pierrec/lz4/v4,
// the default) and zlib deflate (github.com/klauspost/compress/zlib). None
// reports the capability as absent.
package compress
