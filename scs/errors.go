package scs

import (
	"errors"

	"github.com/TheusHen/SCS/scs/keyset"
)

var (
	ErrMem            = errors.New("scs: buffer capacity exceeded")
	ErrCrypto         = errors.New("scs: crypto provider failure")
	ErrOS             = errors.New("scs: system call failure")
	ErrCompression    = errors.New("scs: compression failure")
	ErrWrongTag       = errors.New("scs: wrong tag")
	ErrSessionExpired = errors.New("scs: session expired")
	ErrMalformedToken = errors.New("scs: malformed token")
	ErrTerminated     = errors.New("scs: context terminated")
	ErrNilKeyset      = errors.New("scs: nil keyset")

	// ErrWrongCipherset is shared with the keyset package so errors.Is
	// matches either way.
	ErrWrongCipherset = keyset.ErrWrongCipherset
)
