// Package keyset manages the key material behind SCS tokens.
//
// A Keyset bundles a tid, a cipher suite, a cipher key and an HMAC key.
// Keysets are immutable once built. Rotation works on a Ring, an immutable
// {current, previous} snapshot that a Holder swaps atomically, so readers
// never observe a new current paired with a stale previous.
package keyset
