package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Zlib compresses with zlib-wrapped deflate.
type Zlib struct {
	level   int
	writers sync.Pool
}

// NewZlib creates a zlib compressor at zlib.DefaultCompression.
func NewZlib() *Zlib { return NewZlibLevel(zlib.DefaultCompression) }

// NewZlibLevel creates a zlib compressor at the given deflate level.
func NewZlibLevel(level int) *Zlib {
	z := &Zlib{level: level}
	z.writers.New = func() interface{} {
		w, err := zlib.NewWriterLevel(io.Discard, z.level)
		if err != nil {
			w = zlib.NewWriter(io.Discard)
		}
		return w
	}
	return z
}

func (z *Zlib) Available() bool { return true }

// Bound mirrors zlib's compressBound plus the stream wrapper.
func (z *Zlib) Bound(n int) int {
	return n + (n >> 12) + (n >> 14) + (n >> 25) + 13 + 16
}

func (z *Zlib) Compress(dst, src []byte) (int, error) {
	w := z.writers.Get().(*zlib.Writer)
	defer z.writers.Put(w)

	out := &fixedWriter{buf: dst}
	w.Reset(out)
	if _, err := w.Write(src); err != nil {
		return 0, wrap(ErrCompressionFailed, err)
	}
	if err := w.Close(); err != nil {
		return 0, wrap(ErrCompressionFailed, err)
	}
	return out.n, nil
}

func (z *Zlib) Decompress(dst, src []byte) (int, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, wrap(ErrDecompressionFailed, err)
	}
	defer r.Close()

	out := &fixedWriter{buf: dst}
	if _, err := io.Copy(out, r); err != nil {
		return 0, wrap(ErrDecompressionFailed, err)
	}
	return out.n, nil
}
