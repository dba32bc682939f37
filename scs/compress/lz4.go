package compress

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// Level controls the speed/ratio tradeoff.
type Level int

const (
	LevelFast    Level = iota // Fastest, lower ratio
	LevelDefault              // Balanced
	LevelBest                 // Best ratio, slower
)

// lz4FrameOverhead covers magic, descriptor, content size, block headers,
// end mark and checksums of a single-block frame.
const lz4FrameOverhead = 64

// LZ4 compresses with LZ4 frames. Frames are self-delimiting, so no
// length is stored alongside.
type LZ4 struct {
	level   Level
	writers sync.Pool
	readers sync.Pool
}

// NewLZ4 creates an LZ4 compressor at LevelDefault.
func NewLZ4() *LZ4 { return NewLZ4Level(LevelDefault) }

// NewLZ4Level creates an LZ4 compressor at the given level.
func NewLZ4Level(level Level) *LZ4 {
	return &LZ4{
		level: level,
		writers: sync.Pool{
			New: func() interface{} { return lz4.NewWriter(nil) },
		},
		readers: sync.Pool{
			New: func() interface{} { return lz4.NewReader(nil) },
		},
	}
}

func (c *LZ4) Available() bool { return true }

func (c *LZ4) Bound(n int) int {
	return lz4.CompressBlockBound(n) + lz4FrameOverhead
}

func (c *LZ4) Compress(dst, src []byte) (int, error) {
	w := c.writers.Get().(*lz4.Writer)
	defer c.writers.Put(w)

	out := &fixedWriter{buf: dst}
	w.Reset(out)

	level := lz4.Level4
	switch c.level {
	case LevelFast:
		level = lz4.Fast
	case LevelBest:
		level = lz4.Level9
	}
	_ = w.Apply(lz4.BlockSizeOption(lz4.Block64Kb), lz4.CompressionLevelOption(level))

	if _, err := w.Write(src); err != nil {
		return 0, wrap(ErrCompressionFailed, err)
	}
	if err := w.Close(); err != nil {
		return 0, wrap(ErrCompressionFailed, err)
	}
	return out.n, nil
}

func (c *LZ4) Decompress(dst, src []byte) (int, error) {
	r := c.readers.Get().(*lz4.Reader)
	defer c.readers.Put(r)

	r.Reset(bytes.NewReader(src))

	out := &fixedWriter{buf: dst}
	if _, err := io.Copy(out, r); err != nil {
		return 0, wrap(ErrDecompressionFailed, err)
	}
	return out.n, nil
}

// wrap keeps ErrShortBuffer visible through errors.Is.
func wrap(kind, err error) error {
	if errors.Is(err, ErrShortBuffer) {
		return errors.Join(kind, ErrShortBuffer)
	}
	return errors.Join(kind, err)
}
