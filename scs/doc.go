// Package scs implements Secure Cookie Sessions: application session state
// sealed into a self-contained token that can be stored on an untrusted
// client and validated when it is presented back.
//
// Outbound pipeline:
//
//	state -> [compress] -> length marker + zero padding -> AES-CBC -> HMAC
//
// The HMAC covers ciphertext || atime || tid || iv. Inbound runs the mirror
// image and accepts tokens from the current keyset and, during a rotation
// grace period, the previous one.
//
// A Context is created once and shared by all request handlers. Each call
// works on its own Atoms, so concurrent calls never share scratch memory.
package scs
