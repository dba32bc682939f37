package scs

import (
	"crypto/hmac"
	"crypto/subtle"
	"errors"

	"github.com/TheusHen/SCS/scs/keyset"
)

// Outbound seals state into a token using the current keyset.
func (c *Context) Outbound(state []byte) (*Token, error) {
	a := getAtoms()
	defer putAtoms(a)
	return c.OutboundWith(a, state)
}

// OutboundWith is Outbound using caller-owned atoms. The atoms are reset on
// entry and on every return.
func (c *Context) OutboundWith(a *Atoms, state []byte) (*Token, error) {
	a.Reset()
	defer a.Reset()

	tok, err := c.outbound(a, state)
	if c.closed() {
		// Terminated mid-call; the keys may already be wiped.
		tok, err = nil, ErrTerminated
	}
	if err != nil {
		if c != nil && c.log != nil {
			c.log.Debugf("outbound failed: %v", err)
		}
		return nil, err
	}
	return tok, nil
}

func (c *Context) outbound(a *Atoms, state []byte) (*Token, error) {
	if c.closed() {
		return nil, ErrTerminated
	}
	r := c.keys.Load()
	if r == nil {
		return nil, ErrTerminated
	}
	ks := r.Current
	suite := ks.Suite

	if len(state) > c.maxState {
		return nil, ErrMem
	}
	bodyBound := len(state)
	if ks.Compression {
		bodyBound = c.compressor.Bound(len(state))
	}
	a.alloc(suite.IVSize(), suite.TagSize(), frameCapacity(bodyBound, ks.BlockSize))

	// 1. iv = RAND()
	if err := c.provider.GenerateIV(a.IV); err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}

	// 2. atime = NOW
	now, err := c.clock()
	if err != nil {
		return nil, errors.Join(ErrOS, err)
	}
	a.ATime = now.Unix()

	// 3.1 Comp(state) [OPTIONAL]
	buf := a.Data[:lengthMarkerSize]
	if !ks.Compression {
		buf = append(buf, state...)
	} else {
		n, err := c.compressor.Compress(buf[lengthMarkerSize:cap(buf)], state)
		if err != nil {
			return nil, errors.Join(ErrCompression, err)
		}
		buf = buf[:lengthMarkerSize+n]
	}
	putLength(buf, len(buf)-lengthMarkerSize)

	if buf, err = pad(ks.BlockSize, buf); err != nil {
		return nil, err
	}
	a.Data = buf

	// 3.2 data = Enc(Comp(state))
	if err := c.provider.Encrypt(suite, ks.Key, a.IV, a.Data); err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}

	// 4. tag = HMAC(data||atime||tid||iv)
	if err := c.provider.Tag(suite, ks.HMACKey, a.Tag, tagInput(a.Data, a.ATime, ks.TID, a.IV)...); err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}
	if c.log != nil {
		c.log.Tracef("tag %X", a.Tag)
	}

	return tokenFromAtoms(ks.TID, a), nil
}

// Inbound validates tok and returns the state it carries.
func (c *Context) Inbound(tok *Token) ([]byte, error) {
	a := getAtoms()
	defer putAtoms(a)
	return c.InboundWith(a, tok)
}

// InboundWith is Inbound using caller-owned atoms. The atoms are reset on
// entry and on every return.
func (c *Context) InboundWith(a *Atoms, tok *Token) ([]byte, error) {
	a.Reset()
	defer a.Reset()

	state, err := c.inbound(a, tok)
	if c.closed() {
		clear(state)
		state, err = nil, ErrTerminated
	}
	if err != nil {
		if c != nil && c.log != nil {
			c.log.Debugf("inbound failed: %v", err)
		}
		return nil, err
	}
	return state, nil
}

func (c *Context) inbound(a *Atoms, tok *Token) ([]byte, error) {
	if c.closed() {
		return nil, ErrTerminated
	}
	r := c.keys.Load()
	if r == nil {
		return nil, ErrTerminated
	}

	if err := parseToken(c.suite, c.maxData, tok, a); err != nil {
		return nil, err
	}

	ks, err := c.verify(r, tok.TID, a)
	if err != nil {
		return nil, err
	}
	if ks != r.Current && c.log != nil {
		c.log.Debugf("token accepted by previous keyset %q", ks.TID)
	}

	now, err := c.clock()
	if err != nil {
		return nil, errors.Join(ErrOS, err)
	}
	if !c.fresh(a.ATime, now.Unix()) {
		return nil, ErrSessionExpired
	}

	if err := c.provider.Decrypt(ks.Suite, ks.Key, a.IV, a.Data); err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}

	body, err := unpad(a.Data)
	if err != nil {
		return nil, err
	}

	if !ks.Compression {
		return append([]byte{}, body...), nil
	}

	bp := c.scratch.Get().(*[]byte)
	out := *bp
	used := len(out)
	defer func() {
		clear(out[:used])
		c.scratch.Put(bp)
	}()
	n, err := c.compressor.Decompress(out, body)
	if err != nil {
		return nil, errors.Join(ErrCompression, err)
	}
	used = n
	return append([]byte{}, out[:n]...), nil
}

// verify returns the first keyset of r whose tid and tag match the atoms.
// Tid and tag mismatches are indistinguishable to the caller.
func (c *Context) verify(r *keyset.Ring, tid string, a *Atoms) (*keyset.Keyset, error) {
	tag := make([]byte, len(a.Tag))
	for _, ks := range r.Keysets() {
		if err := c.provider.Tag(ks.Suite, ks.HMACKey, tag, tagInput(a.Data, a.ATime, tid, a.IV)...); err != nil {
			return nil, errors.Join(ErrCrypto, err)
		}
		tidOK := subtle.ConstantTimeCompare([]byte(tid), []byte(ks.TID)) == 1
		if hmac.Equal(tag, a.Tag) && tidOK {
			return ks, nil
		}
	}
	return nil, ErrWrongTag
}

// fresh reports whether atime lies in [now - maxAge, now], with maxAge in
// whole seconds rounded up.
func (c *Context) fresh(atime, now int64) bool {
	return atime <= now && atime >= now-c.maxAgeSecs
}

// Refresh re-issues tok with a new atime under the current keyset. Tokens
// still accepted through the previous keyset move onto the current one.
func (c *Context) Refresh(tok *Token) (*Token, error) {
	a := getAtoms()
	defer putAtoms(a)

	state, err := c.InboundWith(a, tok)
	if err != nil {
		return nil, err
	}
	defer clear(state)
	return c.OutboundWith(a, state)
}
