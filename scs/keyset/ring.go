package keyset

import (
	"errors"
	"sync/atomic"
)

var ErrNoRing = errors.New("keyset: no keyset installed")

// Ring is an immutable snapshot of the keysets accepted at one moment.
// Current encodes; Previous is only consulted on decode. Previous is nil
// until the first rotation.
type Ring struct {
	Current  *Keyset
	Previous *Keyset
}

// Keysets returns the non-nil keysets in lookup order.
func (r *Ring) Keysets() []*Keyset {
	if r == nil || r.Current == nil {
		return nil
	}
	if r.Previous == nil {
		return []*Keyset{r.Current}
	}
	return []*Keyset{r.Current, r.Previous}
}

// Holder publishes Ring snapshots to concurrent readers.
type Holder struct {
	ring atomic.Pointer[Ring]
}

// NewHolder creates a holder whose ring has current as its only keyset.
func NewHolder(current *Keyset) *Holder {
	h := &Holder{}
	h.ring.Store(&Ring{Current: current.clone(true)})
	return h
}

// Load returns the current snapshot, or nil once cleared.
func (h *Holder) Load() *Ring {
	return h.ring.Load()
}

// Rotate installs next as current and demotes the old current to previous.
// The old previous is dropped. Returns the installed snapshot.
func (h *Holder) Rotate(next *Keyset) (*Ring, error) {
	cur := next.clone(true)
	for {
		old := h.ring.Load()
		if old == nil {
			return nil, ErrNoRing
		}
		r := &Ring{Current: cur, Previous: old.Current.clone(false)}
		if h.ring.CompareAndSwap(old, r) {
			return r, nil
		}
	}
}

// Clear detaches the ring and returns the last snapshot.
func (h *Holder) Clear() *Ring {
	return h.ring.Swap(nil)
}
