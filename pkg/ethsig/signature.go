package ethsig

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// SignatureLength is the size of a packed r || s || v signature.
	SignatureLength = 65
	// CompactLength is the size of r || s without the recovery byte.
	CompactLength = 64

	// recoveryOffset is added to the raw recovery id to form v.
	recoveryOffset = 27
)

// Signature is a recoverable secp256k1 signature in Ethereum layout. V holds
// the recovery id plus 27.
type Signature struct {
	R [32]byte
	S [32]byte
	V uint8
}

// NewSignature stores r, s and v verbatim. Use it for signatures that are
// already known to be canonical.
func NewSignature(r, s [32]byte, v uint8) Signature {
	return Signature{R: r, S: s, V: v}
}

// ParseSignature splits a packed 65-byte r || s || v signature. No
// canonicalization is applied; the input is expected to come from Bytes.
func ParseSignature(data []byte) (Signature, error) {
	var sig Signature
	if len(data) != SignatureLength {
		return sig, errors.Wrapf(ErrInvalidLength, "signature must be %d bytes, got %d", SignatureLength, len(data))
	}
	copy(sig.R[:], data[:32])
	copy(sig.S[:], data[32:64])
	sig.V = data[64]
	return sig, nil
}

// ParseSignatureHex decodes a 0x-prefixed packed signature.
func ParseSignatureHex(s string) (Signature, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to decode signature")
	}
	return ParseSignature(b)
}

// NewSignatureFromCompact builds a signature from a 64-byte r || s and the
// raw recovery id produced by the signing primitive.
//
// If s is in the upper half of the group order it is replaced by n - s and
// the parity of the recovery id is flipped, so the result always has
// s <= n/2. V is then stored as recovery + 27.
func NewSignatureFromCompact(data []byte, recovery uint8) (Signature, error) {
	return DefaultCurve().NewSignatureFromCompact(data, recovery)
}

// NewSignatureFromCompact canonicalizes against the order of c.
func (c *Curve) NewSignatureFromCompact(data []byte, recovery uint8) (Signature, error) {
	var sig Signature
	if len(data) != CompactLength {
		return sig, errors.Wrapf(ErrInvalidLength, "compact signature must be %d bytes, got %d", CompactLength, len(data))
	}
	copy(sig.R[:], data[:32])
	copy(sig.S[:], data[32:])
	sig.V = recovery

	s := new(uint256.Int).SetBytes32(sig.S[:])
	if s.Gt(c.halfOrder) {
		sig.V ^= 1
		sig.S = new(uint256.Int).Sub(c.order, s).Bytes32()
	}

	sig.V += recoveryOffset
	return sig, nil
}

// Bytes returns the packed 65-byte r || s || v form.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out[:32], s.R[:])
	copy(out[32:64], s.S[:])
	out[64] = s.V
	return out
}

// Compact returns r || s.
func (s Signature) Compact() []byte {
	return s.Bytes()[:CompactLength]
}

// RecoveryID returns V - 27. The result is only meaningful when V is 27 or 28.
func (s Signature) RecoveryID() int {
	return int(s.V) - recoveryOffset
}

// IsCanonical reports whether s is in the lower half of the group order and
// v is 27 or 28.
func (s Signature) IsCanonical() bool {
	if s.V != recoveryOffset && s.V != recoveryOffset+1 {
		return false
	}
	return !new(uint256.Int).SetBytes32(s.S[:]).Gt(DefaultCurve().halfOrder)
}

// Hex returns the 0x-prefixed hex of the packed form.
func (s Signature) Hex() string { return hexutil.Encode(s.Bytes()) }

func (s Signature) String() string { return s.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s.Bytes()).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(input []byte) error {
	var raw [SignatureLength]byte
	if err := hexutil.UnmarshalFixedText("Signature", input, raw[:]); err != nil {
		return err
	}
	sig, err := ParseSignature(raw[:])
	if err != nil {
		return err
	}
	*s = sig
	return nil
}
