package scs

import (
	"encoding/binary"

	"github.com/TheusHen/SCS/scs/crypto"
	"github.com/TheusHen/SCS/scs/keyset"
)

// Token is the protected form of a session state. Its wire encoding is left
// to the caller.
type Token struct {
	TID   string
	IV    []byte
	ATime int64 // seconds since the Unix epoch
	Data  []byte
	Tag   []byte
}

// tokenFromAtoms copies the atoms into a token that shares no memory with them.
func tokenFromAtoms(tid string, a *Atoms) *Token {
	return &Token{
		TID:   tid,
		IV:    append([]byte(nil), a.IV...),
		ATime: a.ATime,
		Data:  append([]byte(nil), a.Data...),
		Tag:   append([]byte(nil), a.Tag...),
	}
}

// parseToken validates the token shape for suite and loads it into a.
func parseToken(suite crypto.CipherSuite, maxData int, tok *Token, a *Atoms) error {
	if tok == nil {
		return ErrMalformedToken
	}
	if len(tok.TID) > keyset.MaxTIDLen {
		return ErrMalformedToken
	}
	if len(tok.IV) != suite.IVSize() || len(tok.Tag) != suite.TagSize() {
		return ErrMalformedToken
	}
	if len(tok.Data) == 0 || len(tok.Data)%suite.BlockSize() != 0 || len(tok.Data) > maxData {
		return ErrMalformedToken
	}
	a.alloc(suite.IVSize(), suite.TagSize(), len(tok.Data))
	copy(a.IV, tok.IV)
	copy(a.Tag, tok.Tag)
	a.Data = append(a.Data, tok.Data...)
	a.ATime = tok.ATime
	return nil
}

// tagInput returns the parts covered by the tag: data || atime || tid || iv.
func tagInput(data []byte, atime int64, tid string, iv []byte) [][]byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(atime))
	return [][]byte{data, ts[:], []byte(tid), iv}
}
