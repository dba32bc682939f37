package keyset

import (
	"crypto/sha256"
	"io"

	"github.com/TheusHen/SCS/scs/crypto"
	"golang.org/x/crypto/hkdf"
)

const deriveInfo = "scs-keyset-v1"

// Derive derives a cipher key and an HMAC key for suite from secret using
// HKDF-SHA256. The tid and suite are bound into the info so distinct tids
// never share key material. salt can be nil.
func Derive(secret, salt []byte, tid string, suite crypto.CipherSuite) (key, hmacKey []byte, err error) {
	if !suite.Valid() {
		return nil, nil, ErrWrongCipherset
	}
	tid = TruncateTID(tid)

	info := make([]byte, 0, len(deriveInfo)+1+len(tid))
	info = append(info, deriveInfo...)
	info = append(info, byte(suite))
	info = append(info, tid...)

	hk := hkdf.New(sha256.New, secret, salt, info)
	material := make([]byte, suite.KeySize()+suite.HMACKeySize())
	if _, err := io.ReadFull(hk, material); err != nil {
		return nil, nil, err
	}
	return material[:suite.KeySize()], material[suite.KeySize():], nil
}
