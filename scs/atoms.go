package scs

import "sync"

// InvalidTime marks an unset atime.
const InvalidTime int64 = -1

// Atoms is the scratch state of one Outbound or Inbound call.
// It must not be shared between concurrent calls.
type Atoms struct {
	IV    []byte
	ATime int64
	Data  []byte // len is the size, cap the capacity
	Tag   []byte
}

// NewAtoms returns an empty atom set.
func NewAtoms() *Atoms {
	return &Atoms{ATime: InvalidTime}
}

// Reset zeroes and releases everything the atoms hold. Safe on a nil or
// never-used set.
func (a *Atoms) Reset() {
	if a == nil {
		return
	}
	clear(a.Data[:cap(a.Data)])
	a.Data = nil
	clear(a.IV)
	a.IV = a.IV[:0]
	clear(a.Tag)
	a.Tag = a.Tag[:0]
	a.ATime = InvalidTime
}

// alloc sizes the fixed-length atoms for ivSize/tagSize and gives Data an
// empty buffer of the requested capacity.
func (a *Atoms) alloc(ivSize, tagSize, capacity int) {
	a.IV = grow(a.IV, ivSize)
	a.Tag = grow(a.Tag, tagSize)
	a.Data = make([]byte, 0, capacity)
}

func grow(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}

// atomsPool reuses atom sets across calls. Sets are always Reset before
// going back, so no key-dependent bytes survive in the pool.
var atomsPool = sync.Pool{
	New: func() interface{} {
		return NewAtoms()
	},
}

func getAtoms() *Atoms {
	return atomsPool.Get().(*Atoms)
}

func putAtoms(a *Atoms) {
	a.Reset()
	atomsPool.Put(a)
}
