package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestCipherSuiteSizes(t *testing.T) {
	s := AES128CBCHMACSHA1
	assert.True(t, s.Valid())
	assert.Equal(t, 16, s.KeySize())
	assert.Equal(t, 16, s.BlockSize())
	assert.Equal(t, 20, s.HMACKeySize())
	assert.Equal(t, 16, s.IVSize())
	assert.Equal(t, 20, s.TagSize())
	assert.Equal(t, "AES-128-CBC-HMAC-SHA1", s.String())

	unknown := CipherSuite(42)
	assert.False(t, unknown.Valid())
	assert.Zero(t, unknown.KeySize())
	assert.Equal(t, "UNKNOWN(42)", unknown.String())
}

// NIST SP 800-38A F.2.1, first block.
func TestStdEncryptKnownVector(t *testing.T) {
	p := NewStd()
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	buf := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")

	require.NoError(t, p.Encrypt(AES128CBCHMACSHA1, key, iv, buf))
	assert.Equal(t, "7649abac8119b246cee98e9b12e9197d", hex.EncodeToString(buf))

	require.NoError(t, p.Decrypt(AES128CBCHMACSHA1, key, iv, buf))
	assert.Equal(t, "6bc1bee22e409f96e93d7e117393172a", hex.EncodeToString(buf))
}

// RFC 2202 test case 1.
func TestStdTagKnownVector(t *testing.T) {
	p := NewStd()
	key := bytes.Repeat([]byte{0x0b}, 20)
	tag := make([]byte, AES128CBCHMACSHA1.TagSize())

	require.NoError(t, p.Tag(AES128CBCHMACSHA1, key, tag, []byte("Hi "), []byte("There")))
	assert.Equal(t, "b617318655057264e28bc0b6fb378c8ef146be00", hex.EncodeToString(tag))
}

func TestStdRejectsBadInput(t *testing.T) {
	p := NewStd()
	key := make([]byte, 16)
	iv := make([]byte, 16)

	err := p.Encrypt(AES128CBCHMACSHA1, key, iv, make([]byte, 15))
	assert.ErrorIs(t, err, ErrNotBlockAligned)

	err = p.Encrypt(AES128CBCHMACSHA1, key[:8], iv, make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	err = p.Decrypt(AES128CBCHMACSHA1, key, iv[:4], make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidIVSize)

	err = p.Encrypt(CipherSuite(9), key, iv, make([]byte, 16))
	assert.ErrorIs(t, err, ErrUnsupportedSuite)

	err = p.Tag(AES128CBCHMACSHA1, make([]byte, 20), make([]byte, 4))
	assert.ErrorIs(t, err, ErrInvalidTagSize)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestStdGenerateIV(t *testing.T) {
	p := NewStd()
	a := make([]byte, 16)
	b := make([]byte, 16)
	require.NoError(t, p.GenerateIV(a))
	require.NoError(t, p.GenerateIV(b))
	assert.NotEqual(t, a, b)

	require.Error(t, NewStdWithRand(failingReader{}).GenerateIV(a))
}

func BenchmarkStdEncrypt(b *testing.B) {
	p := NewStd()
	key := make([]byte, 16)
	iv := make([]byte, 16)
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Encrypt(AES128CBCHMACSHA1, key, iv, buf)
	}
}
