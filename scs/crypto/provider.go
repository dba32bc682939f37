package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"errors"
	"hash"
	"io"
)

var (
	ErrUnsupportedSuite = errors.New("crypto: unsupported cipher suite")
	ErrInvalidKeySize   = errors.New("crypto: invalid key size for cipher suite")
	ErrInvalidIVSize    = errors.New("crypto: invalid IV size for cipher suite")
	ErrNotBlockAligned  = errors.New("crypto: buffer is not a multiple of the block size")
	ErrInvalidTagSize   = errors.New("crypto: invalid tag size for cipher suite")
)

// Provider is the capability interface to a cipher/MAC implementation.
// Implementations must be safe for concurrent use once Init has returned.
type Provider interface {
	Init() error
	// GenerateIV fills iv with fresh random bytes.
	GenerateIV(iv []byte) error
	// Encrypt encrypts buf in place. len(buf) must be a multiple of the block size.
	Encrypt(suite CipherSuite, key, iv, buf []byte) error
	// Decrypt decrypts buf in place.
	Decrypt(suite CipherSuite, key, iv, buf []byte) error
	// Tag writes MAC(hmacKey, parts[0] || parts[1] || ...) into tag.
	Tag(suite CipherSuite, hmacKey, tag []byte, parts ...[]byte) error
	Terminate()
}

// Std is the default Provider built on the standard library AES and HMAC.
type Std struct {
	rand io.Reader
}

// NewStd creates a provider reading IVs from crypto/rand.
func NewStd() *Std {
	return &Std{rand: rand.Reader}
}

// NewStdWithRand creates a provider reading IVs from r (for deterministic tests).
func NewStdWithRand(r io.Reader) *Std {
	if r == nil {
		r = rand.Reader
	}
	return &Std{rand: r}
}

func (p *Std) Init() error { return nil }

func (p *Std) Terminate() {}

func (p *Std) GenerateIV(iv []byte) error {
	_, err := io.ReadFull(p.rand, iv)
	return err
}

func (p *Std) block(suite CipherSuite, key, iv, buf []byte) (cipher.Block, error) {
	if !suite.Valid() {
		return nil, ErrUnsupportedSuite
	}
	if len(key) != suite.KeySize() {
		return nil, ErrInvalidKeySize
	}
	if len(iv) != suite.IVSize() {
		return nil, ErrInvalidIVSize
	}
	if len(buf)%suite.BlockSize() != 0 {
		return nil, ErrNotBlockAligned
	}
	return aes.NewCipher(key)
}

func (p *Std) Encrypt(suite CipherSuite, key, iv, buf []byte) error {
	b, err := p.block(suite, key, iv, buf)
	if err != nil {
		return err
	}
	cipher.NewCBCEncrypter(b, iv).CryptBlocks(buf, buf)
	return nil
}

func (p *Std) Decrypt(suite CipherSuite, key, iv, buf []byte) error {
	b, err := p.block(suite, key, iv, buf)
	if err != nil {
		return err
	}
	cipher.NewCBCDecrypter(b, iv).CryptBlocks(buf, buf)
	return nil
}

func (p *Std) Tag(suite CipherSuite, hmacKey, tag []byte, parts ...[]byte) error {
	var h func() hash.Hash
	switch suite {
	case AES128CBCHMACSHA1:
		h = sha1.New
	default:
		return ErrUnsupportedSuite
	}
	if len(hmacKey) != suite.HMACKeySize() {
		return ErrInvalidKeySize
	}
	if len(tag) != suite.TagSize() {
		return ErrInvalidTagSize
	}
	mac := hmac.New(h, hmacKey)
	for _, part := range parts {
		mac.Write(part)
	}
	copy(tag, mac.Sum(nil))
	return nil
}
