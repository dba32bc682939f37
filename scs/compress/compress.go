package compress

import "errors"

var (
	ErrCompressionFailed   = errors.New("compress: compression failed")
	ErrDecompressionFailed = errors.New("compress: decompression failed")
	ErrShortBuffer         = errors.New("compress: output exceeds buffer capacity")
)

// Compressor is the capability interface to a compression algorithm.
type Compressor interface {
	// Available reports whether compression can actually be performed.
	Available() bool
	// Bound returns the worst-case compressed size of n input bytes.
	Bound(n int) int
	// Compress compresses src into dst and returns the number of bytes written.
	Compress(dst, src []byte) (int, error)
	// Decompress decompresses src into dst and returns the number of bytes written.
	Decompress(dst, src []byte) (int, error)
}

// None is the Compressor used when no algorithm is available.
type None struct{}

func (None) Available() bool { return false }

func (None) Bound(n int) int { return n }

func (None) Compress(dst, src []byte) (int, error) { return 0, ErrCompressionFailed }

func (None) Decompress(dst, src []byte) (int, error) { return 0, ErrDecompressionFailed }

// Enabled reports whether c is non-nil and available.
func Enabled(c Compressor) bool {
	return c != nil && c.Available()
}

// fixedWriter is an io.Writer over a fixed slice.
type fixedWriter struct {
	buf []byte
	n   int
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	if len(p) > len(w.buf)-w.n {
		return 0, ErrShortBuffer
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)
	return len(p), nil
}
