package crypto

import "fmt"

// CipherSuite identifies a cipher + MAC combination.
// New suites are added as new constants with their fixed sizes.
type CipherSuite uint8

const (
	// AES128CBCHMACSHA1 is AES-128 in CBC mode authenticated with HMAC-SHA1.
	AES128CBCHMACSHA1 CipherSuite = 1
)

// Valid reports whether s is a member of the supported set.
func (s CipherSuite) Valid() bool {
	switch s {
	case AES128CBCHMACSHA1:
		return true
	default:
		return false
	}
}

// KeySize returns the cipher key length in bytes.
func (s CipherSuite) KeySize() int {
	switch s {
	case AES128CBCHMACSHA1:
		return 16
	default:
		return 0
	}
}

// BlockSize returns the cipher block length in bytes.
func (s CipherSuite) BlockSize() int {
	switch s {
	case AES128CBCHMACSHA1:
		return 16
	default:
		return 0
	}
}

// HMACKeySize returns the MAC key length in bytes.
func (s CipherSuite) HMACKeySize() int {
	switch s {
	case AES128CBCHMACSHA1:
		return 20
	default:
		return 0
	}
}

// IVSize returns the IV length in bytes. CBC uses one block.
func (s CipherSuite) IVSize() int { return s.BlockSize() }

// TagSize returns the MAC output length in bytes.
func (s CipherSuite) TagSize() int {
	switch s {
	case AES128CBCHMACSHA1:
		return 20
	default:
		return 0
	}
}

func (s CipherSuite) String() string {
	switch s {
	case AES128CBCHMACSHA1:
		return "AES-128-CBC-HMAC-SHA1"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}
