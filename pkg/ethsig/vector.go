package ethsig

import "github.com/ethereum/go-ethereum/common"

// SignatureVector is a signed digest together with the identity that is
// expected to have signed it. Either expectation may be absent.
type SignatureVector struct {
	Digest    Digest
	Signature Signature
	Common    *Common         // Expected public key (optional)
	Address   *common.Address // Expected address (optional)
}

// HasExpectation reports whether the vector names a signer to check against.
func (v *SignatureVector) HasExpectation() bool {
	return v.Common != nil || v.Address != nil
}

// BatchResult is the outcome of recovering the signer of one vector.
type BatchResult struct {
	Index    int            // Position of the vector in the input
	Common   Common         // Recovered public key
	Address  common.Address // Address of the recovered key
	Verified bool           // Whether the recovered key matched the vector's expectation
	Err      error          // Recovery or mismatch error
}
