package scs

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TheusHen/SCS/scs/compress"
	"github.com/TheusHen/SCS/scs/crypto"
	"github.com/TheusHen/SCS/scs/keyset"
	"github.com/pion/logging"
)

const (
	// DefaultMaxSessionAge replaces a non-positive max session age.
	DefaultMaxSessionAge = time.Hour
	// DefaultMaxStateSize bounds the plaintext state accepted by Outbound.
	DefaultMaxStateSize = 64 * 1024
)

// Clock returns the current time. An error is reported as ErrOS.
type Clock func() (time.Time, error)

func systemClock() (time.Time, error) { return time.Now(), nil }

type options struct {
	provider      crypto.Provider
	compressor    compress.Compressor
	loggerFactory logging.LoggerFactory
	clock         Clock
	maxStateSize  int
}

// Option configures a Context.
type Option func(*options)

// WithProvider sets the cipher/MAC backend. Defaults to crypto.NewStd().
func WithProvider(p crypto.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithRand makes the default provider read IVs from r.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.provider = crypto.NewStdWithRand(r)
		}
	}
}

// WithCompressor sets the compressor. Pass compress.None{} to disable
// compression regardless of what keysets request. Defaults to LZ4.
func WithCompressor(c compress.Compressor) Option {
	return func(o *options) {
		if c != nil {
			o.compressor = c
		}
	}
}

// WithLoggerFactory enables logging under the "scs" scope.
// If unset, logging is disabled.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(o *options) { o.loggerFactory = f }
}

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithMaxStateSize bounds the plaintext state size. Non-positive values are ignored.
func WithMaxStateSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxStateSize = n
		}
	}
}

// Context is the long-lived SCS state: configuration plus the keyset ring.
// It is safe for concurrent use. Per-call state lives in Atoms.
type Context struct {
	suite      crypto.CipherSuite
	maxAge     time.Duration
	maxAgeSecs int64
	maxState   int
	maxData    int
	keys       *keyset.Holder
	provider   crypto.Provider
	compressor compress.Compressor
	clock      Clock
	log        logging.LeveledLogger
	terminated atomic.Bool

	// scratch holds maxState-sized decompression buffers.
	scratch sync.Pool
}

// Init creates a Context whose current keyset is built from tid, suite, key
// and hmacKey. Tids longer than 64 bytes are silently truncated. The
// compression request is dropped if the compressor is unavailable; read
// Compression() for the effective value.
func Init(tid string, suite crypto.CipherSuite, key, hmacKey []byte, compression bool, maxSessionAge time.Duration, opts ...Option) (*Context, error) {
	o := options{
		provider:     crypto.NewStd(),
		compressor:   compress.NewLZ4(),
		clock:        systemClock,
		maxStateSize: DefaultMaxStateSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ks, err := keyset.New(tid, suite, key, hmacKey, compression, o.compressor)
	if err != nil {
		return nil, err
	}
	defer ks.Wipe()

	if err := o.provider.Init(); err != nil {
		return nil, errors.Join(ErrCrypto, err)
	}

	if maxSessionAge <= 0 {
		maxSessionAge = DefaultMaxSessionAge
	}
	// atime has one second resolution; partial seconds round up.
	maxAgeSecs := int64((maxSessionAge + time.Second - 1) / time.Second)

	bodyBound := o.maxStateSize
	if compress.Enabled(o.compressor) {
		bodyBound = max(bodyBound, o.compressor.Bound(o.maxStateSize))
	}

	c := &Context{
		suite:      suite,
		maxAge:     maxSessionAge,
		maxAgeSecs: maxAgeSecs,
		maxState:   o.maxStateSize,
		maxData:    frameCapacity(bodyBound, suite.BlockSize()),
		keys:       keyset.NewHolder(ks),
		provider:   o.provider,
		compressor: o.compressor,
		clock:      o.clock,
	}
	c.scratch.New = func() any {
		b := make([]byte, c.maxState)
		return &b
	}
	if o.loggerFactory != nil {
		c.log = o.loggerFactory.NewLogger("scs")
		c.log.Infof("initialized tid=%q suite=%s compression=%t max-age=%s",
			ks.TID, suite, ks.Compression, maxSessionAge)
	}
	return c, nil
}

// Terminate wipes the key material and releases the provider. It is safe
// on a nil or already terminated Context. A call still in flight when
// Terminate runs fails with ErrTerminated instead of returning a result
// computed with wiped keys.
func (c *Context) Terminate() {
	if c == nil || !c.terminated.CompareAndSwap(false, true) {
		return
	}
	if r := c.keys.Clear(); r != nil {
		for _, ks := range r.Keysets() {
			ks.Wipe()
		}
	}
	c.provider.Terminate()
	if c.log != nil {
		c.log.Info("terminated")
	}
}

// Rotate builds a keyset with the context's cipher suite and makes it
// current. The old current keyset stays valid for Inbound until the next
// rotation.
func (c *Context) Rotate(tid string, key, hmacKey []byte, compression bool) error {
	if c.closed() {
		return ErrTerminated
	}
	ks, err := keyset.New(tid, c.suite, key, hmacKey, compression, c.compressor)
	if err != nil {
		return err
	}
	defer ks.Wipe()
	return c.install(ks)
}

// RotateKeyset makes ks current. The compression flag is re-evaluated
// against this context's compressor.
func (c *Context) RotateKeyset(ks *keyset.Keyset) error {
	if c.closed() {
		return ErrTerminated
	}
	if ks == nil {
		return ErrNilKeyset
	}
	if ks.Suite != c.suite {
		return ErrWrongCipherset
	}
	return c.Rotate(ks.TID, ks.Key, ks.HMACKey, ks.Compression)
}

func (c *Context) install(ks *keyset.Keyset) error {
	r, err := c.keys.Rotate(ks)
	if err != nil {
		return ErrTerminated
	}
	if c.log != nil {
		c.log.Infof("rotated keyset: current=%q previous=%q", r.Current.TID, r.Previous.TID)
	}
	return nil
}

// Compression reports whether the current keyset compresses.
func (c *Context) Compression() bool {
	if c.closed() {
		return false
	}
	r := c.keys.Load()
	return r != nil && r.Current.Compression
}

// TID returns the tid of the current keyset.
func (c *Context) TID() string {
	if c.closed() {
		return ""
	}
	if r := c.keys.Load(); r != nil {
		return r.Current.TID
	}
	return ""
}

// Suite returns the context's cipher suite.
func (c *Context) Suite() crypto.CipherSuite { return c.suite }

// MaxSessionAge returns the effective maximum session age.
func (c *Context) MaxSessionAge() time.Duration { return c.maxAge }

func (c *Context) closed() bool {
	return c == nil || c.terminated.Load()
}
