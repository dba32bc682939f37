package keyset

import (
	"crypto/sha256"
	"errors"
	"strconv"
	"sync"

	"github.com/TheusHen/SCS/scs/compress"
	"github.com/TheusHen/SCS/scs/crypto"
)

var ErrChainExhausted = errors.New("keyset: maximum generation reached")

const (
	// ChainKeySize is the chain key length.
	ChainKeySize = 32
	// MaxGeneration bounds the number of keysets a chain can produce.
	MaxGeneration = 1 << 32
)

// maxChainTIDLen leaves room in MaxTIDLen for the ".g<generation>" suffix.
var maxChainTIDLen = MaxTIDLen - len(".g"+strconv.FormatUint(MaxGeneration-1, 10))

// Chain produces a sequence of keysets for scheduled rotation.
// Each step derives the generation's key material from the chain key and
// then replaces the chain key, so a leaked chain key does not expose the
// keysets already handed out.
type Chain struct {
	mu          sync.Mutex
	chainKey    [ChainKeySize]byte
	generation  uint64
	tid         string
	suite       crypto.CipherSuite
	compression bool
	compressor  compress.Compressor
}

// NewChain creates a chain from a 32-byte seed. Keysets are named
// "<tid>.g<generation>"; tid is truncated so the suffix always fits.
func NewChain(seed []byte, tid string, suite crypto.CipherSuite, compression bool, c compress.Compressor) (*Chain, error) {
	if len(seed) != ChainKeySize {
		return nil, errors.New("keyset: chain seed must be 32 bytes")
	}
	if !suite.Valid() {
		return nil, ErrWrongCipherset
	}
	if len(tid) > maxChainTIDLen {
		tid = tid[:maxChainTIDLen]
	}
	ch := &Chain{tid: tid, suite: suite, compression: compression, compressor: c}
	copy(ch.chainKey[:], seed)
	return ch, nil
}

// step derives (nextChainKey, generationSecret) from the chain key.
// chainKey || 0x01 -> generationSecret
// chainKey || 0x02 -> nextChainKey
func step(chainKey [ChainKeySize]byte) ([ChainKeySize]byte, [ChainKeySize]byte) {
	h1 := sha256.New()
	h1.Write(chainKey[:])
	h1.Write([]byte{0x01})
	var secret [ChainKeySize]byte
	copy(secret[:], h1.Sum(nil))

	h2 := sha256.New()
	h2.Write(chainKey[:])
	h2.Write([]byte{0x02})
	var next [ChainKeySize]byte
	copy(next[:], h2.Sum(nil))

	return next, secret
}

// Next advances the chain and returns the keyset for the generation it consumed.
func (ch *Chain) Next() (*Keyset, uint64, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.generation >= MaxGeneration {
		return nil, 0, ErrChainExhausted
	}

	next, secret := step(ch.chainKey)
	gen := ch.generation
	ch.chainKey = next
	ch.generation++

	tid := ch.tid + ".g" + strconv.FormatUint(gen, 10)
	key, hkey, err := Derive(secret[:], nil, tid, ch.suite)
	wipe(secret[:])
	if err != nil {
		return nil, 0, err
	}
	defer wipe(key)
	defer wipe(hkey)

	ks, err := New(tid, ch.suite, key, hkey, ch.compression, ch.compressor)
	if err != nil {
		return nil, 0, err
	}
	return ks, gen, nil
}

// Generation returns the number of keysets produced so far.
func (ch *Chain) Generation() uint64 {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.generation
}
