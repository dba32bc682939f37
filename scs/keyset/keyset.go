package keyset

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/TheusHen/SCS/scs/compress"
	"github.com/TheusHen/SCS/scs/crypto"
)

var (
	ErrWrongCipherset = errors.New("keyset: unsupported cipher suite")
	ErrKeySize        = errors.New("keyset: key material shorter than the cipher suite requires")
)

// MaxTIDLen is the tid capacity. Longer tids are silently truncated.
const MaxTIDLen = 64

// Keyset is one generation of key material.
type Keyset struct {
	TID         string
	Suite       crypto.CipherSuite
	Key         []byte
	HMACKey     []byte
	BlockSize   int
	Compression bool // effective, not requested
	InUse       bool // set on the ring's current keyset
}

// New builds a keyset. Key and hmacKey are copied verbatim; bytes past the
// suite's sizes are ignored and the content is not inspected.
// Compression is enabled only if requested and c is available.
func New(tid string, suite crypto.CipherSuite, key, hmacKey []byte, compression bool, c compress.Compressor) (*Keyset, error) {
	if !suite.Valid() {
		return nil, ErrWrongCipherset
	}
	if len(key) < suite.KeySize() || len(hmacKey) < suite.HMACKeySize() {
		return nil, ErrKeySize
	}

	ks := &Keyset{
		TID:         TruncateTID(tid),
		Suite:       suite,
		Key:         make([]byte, suite.KeySize()),
		HMACKey:     make([]byte, suite.HMACKeySize()),
		BlockSize:   suite.BlockSize(),
		Compression: compression && compress.Enabled(c),
	}
	copy(ks.Key, key)
	copy(ks.HMACKey, hmacKey)
	return ks, nil
}

// Generate builds a keyset with random key material.
func Generate(tid string, suite crypto.CipherSuite, compression bool, c compress.Compressor) (*Keyset, error) {
	if !suite.Valid() {
		return nil, ErrWrongCipherset
	}
	key := make([]byte, suite.KeySize())
	hkey := make([]byte, suite.HMACKeySize())
	defer wipe(key)
	defer wipe(hkey)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, hkey); err != nil {
		return nil, err
	}
	return New(tid, suite, key, hkey, compression, c)
}

// TruncateTID cuts tid to MaxTIDLen bytes.
func TruncateTID(tid string) string {
	if len(tid) > MaxTIDLen {
		return tid[:MaxTIDLen]
	}
	return tid
}

// Wipe zeroes the key material. The keyset must not be used afterwards.
func (ks *Keyset) Wipe() {
	if ks == nil {
		return
	}
	wipe(ks.Key)
	wipe(ks.HMACKey)
}

func (ks *Keyset) clone(inUse bool) *Keyset {
	c := *ks
	c.Key = append([]byte(nil), ks.Key...)
	c.HMACKey = append([]byte(nil), ks.HMACKey...)
	c.InUse = inUse
	return &c
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
