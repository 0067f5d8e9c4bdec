package ethsig

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// DigestLength is the size of a Keccak-256 digest.
const DigestLength = 32

// Digest is a 32-byte Keccak-256 output or externally supplied message hash.
type Digest [DigestLength]byte

// DigestFromBytes copies b into a Digest. b must be exactly 32 bytes.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestLength {
		return d, errors.Wrapf(ErrInvalidLength, "digest must be %d bytes, got %d", DigestLength, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// DigestFromHex decodes a 0x-prefixed hex digest.
func DigestFromHex(s string) (Digest, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Digest{}, errors.Wrap(err, "failed to decode digest")
	}
	return DigestFromBytes(b)
}

// Hex returns the 0x-prefixed hex form of the digest.
func (d Digest) Hex() string { return hexutil.Encode(d[:]) }

func (d Digest) String() string { return d.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return hexutil.Bytes(d[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Digest", input, d[:])
}

// Hash computes the legacy Keccak-256 digest of data. This is the pre-NIST
// padding used by Ethereum, not SHA3-256.
func Hash(data []byte) Digest {
	return HashAll(data)
}

// HashString hashes the raw bytes of s.
func HashString(s string) Digest {
	return Hash([]byte(s))
}

// HashAll hashes the concatenation of parts without building it.
func HashAll(parts ...[]byte) Digest {
	hasher := sha3.NewLegacyKeccak256()
	for _, part := range parts {
		hasher.Write(part)
	}
	var d Digest
	hasher.Sum(d[:0])
	return d
}
