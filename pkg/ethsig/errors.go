package ethsig

import "github.com/pkg/errors"

// Invariant violations. These indicate a bug in this package or in the curve
// library, never bad input.
var (
	ErrInvariant        = errors.New("internal invariant violated")
	ErrEncodingMismatch = errors.New("encoded size does not match precomputed size")
)

// Invalid input.
var (
	ErrInvalidLength     = errors.New("invalid input length")
	ErrInvalidSecret     = errors.New("invalid secret")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrInvalidRecoveryID = errors.New("invalid recovery id")
	ErrRecoveryFailed    = errors.New("public key recovery failed")
	ErrSignerMismatch    = errors.New("recovered signer does not match expected signer")
	ErrUnknownObject     = errors.New("unknown object identifier")
)

// ErrCursorExhausted is returned when a byte cursor runs out of input.
var ErrCursorExhausted = errors.New("cursor exhausted")

// ErrBatchStopped marks vectors skipped because an earlier vector failed and
// the batch was configured to stop on failure.
var ErrBatchStopped = errors.New("batch stopped after failure")
