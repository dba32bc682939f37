package scs

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TheusHen/SCS/scs/crypto"
	"github.com/stretchr/testify/require"
)

const (
	testSuite  = crypto.AES128CBCHMACSHA1
	testMaxAge = 10 * time.Minute
)

func testKeys(seed byte) ([]byte, []byte) {
	return bytes.Repeat([]byte{seed}, 16), bytes.Repeat([]byte{seed ^ 0xa5}, 20)
}

func newTestContext(t testing.TB, tid string, seed byte, compression bool, opts ...Option) *Context {
	t.Helper()
	key, hkey := testKeys(seed)
	c, err := Init(tid, testSuite, key, hkey, compression, testMaxAge, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Terminate)
	return c
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
	err error
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (f *fakeClock) Now() (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now, f.err
}

func (f *fakeClock) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *fakeClock) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

// stubProvider wraps the standard provider with injectable failures.
type stubProvider struct {
	*crypto.Std
	initErr    error
	encryptErr error
	decryptErr error
	terminated int

	// Hooks run before the wrapped operation.
	onEncrypt func()
	onDecrypt func()
}

func (p *stubProvider) Init() error { return p.initErr }

func (p *stubProvider) Terminate() { p.terminated++ }

func (p *stubProvider) Encrypt(suite crypto.CipherSuite, key, iv, buf []byte) error {
	if p.onEncrypt != nil {
		p.onEncrypt()
	}
	if p.encryptErr != nil {
		return p.encryptErr
	}
	return p.Std.Encrypt(suite, key, iv, buf)
}

func (p *stubProvider) Decrypt(suite crypto.CipherSuite, key, iv, buf []byte) error {
	if p.onDecrypt != nil {
		p.onDecrypt()
	}
	if p.decryptErr != nil {
		return p.decryptErr
	}
	return p.Std.Decrypt(suite, key, iv, buf)
}

// brokenCompressor is available but always fails.
type brokenCompressor struct{}

func (brokenCompressor) Available() bool { return true }

func (brokenCompressor) Bound(n int) int { return n + 16 }

func (brokenCompressor) Compress(dst, src []byte) (int, error) {
	return 0, errors.New("compressor exploded")
}

func (brokenCompressor) Decompress(dst, src []byte) (int, error) {
	return 0, errors.New("compressor exploded")
}

func cloneToken(tok *Token) *Token {
	return &Token{
		TID:   tok.TID,
		IV:    append([]byte(nil), tok.IV...),
		ATime: tok.ATime,
		Data:  append([]byte(nil), tok.Data...),
		Tag:   append([]byte(nil), tok.Tag...),
	}
}
