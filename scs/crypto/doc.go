// Package crypto provides the cipher/MAC backend used by the SCS codec.
//
// Design goals:
//   - Closed set of cipher suites, each with fixed key/block/MAC sizes
//   - Pluggable backend through the Provider interface
//   - In-place encryption so no plaintext copy outlives the call
//   - Constant-time tag comparison lives with the caller (hmac.Equal)
package crypto
