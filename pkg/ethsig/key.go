package ethsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

const (
	// SecretLength is the size of a secp256k1 private scalar.
	SecretLength = 32
	// CommonLength is the size of an uncompressed public key without its
	// format marker.
	CommonLength = 64

	uncompressedLength = CommonLength + 1
	uncompressedMarker = 0x04
)

// Secret is a secp256k1 private scalar. It is owned by the caller; this
// package never generates secrets.
type Secret [SecretLength]byte

// SecretFromBytes copies b into a Secret. b must be exactly 32 bytes. The
// scalar itself is validated when the secret is used.
func SecretFromBytes(b []byte) (Secret, error) {
	var s Secret
	if len(b) != SecretLength {
		return s, errors.Wrapf(ErrInvalidLength, "secret must be %d bytes, got %d", SecretLength, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// SecretFromHex decodes a 0x-prefixed hex secret.
func SecretFromHex(s string) (Secret, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Secret{}, errors.Wrap(err, "failed to decode secret")
	}
	return SecretFromBytes(b)
}

// scalar converts the secret to a curve scalar, rejecting zero and values
// greater than or equal to the group order.
func (s *Secret) scalar() (*secp256k1.ModNScalar, error) {
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(s[:]); overflow {
		return nil, errors.Wrap(ErrInvalidSecret, "secret is not below the group order")
	}
	if k.IsZero() {
		return nil, errors.Wrap(ErrInvalidSecret, "secret is zero")
	}
	return &k, nil
}

// Common is an uncompressed secp256k1 public key (x || y) with the leading
// 0x04 marker stripped.
type Common [CommonLength]byte

// CommonFromBytes parses a 64-byte public key and checks that it is a point
// on the curve.
func CommonFromBytes(b []byte) (Common, error) {
	if len(b) != CommonLength {
		return Common{}, errors.Wrapf(ErrInvalidLength, "public key must be %d bytes, got %d", CommonLength, len(b))
	}
	data := make([]byte, uncompressedLength)
	data[0] = uncompressedMarker
	copy(data[1:], b)
	key, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return Common{}, errors.Wrapf(ErrInvalidPublicKey, "%v", err)
	}
	return serialize(key)
}

// CommonFromHex decodes a 0x-prefixed hex public key.
func CommonFromHex(s string) (Common, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Common{}, errors.Wrap(err, "failed to decode public key")
	}
	return CommonFromBytes(b)
}

// Address returns the Ethereum address of the key: the last 20 bytes of its
// Keccak-256 hash.
func (c Common) Address() common.Address {
	digest := Hash(c[:])
	return common.BytesToAddress(digest[DigestLength-common.AddressLength:])
}

// Hex returns the 0x-prefixed hex form of the key.
func (c Common) Hex() string { return hexutil.Encode(c[:]) }

func (c Common) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Common) MarshalText() ([]byte, error) {
	return hexutil.Bytes(c[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Common) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Common", input, c[:])
}

// Commonize derives the public key of secret.
func Commonize(secret Secret) (Common, error) {
	return DefaultCurve().Commonize(secret)
}

// Commonize derives the public key of secret.
func (c *Curve) Commonize(secret Secret) (Common, error) {
	k, err := secret.scalar()
	if err != nil {
		return Common{}, err
	}
	priv := secp256k1.NewPrivateKey(k)
	defer priv.Zero()
	return serialize(priv.PubKey())
}

// serialize converts a curve point to its 64-byte wire form. Any deviation
// from the 65-byte 0x04-prefixed encoding is an invariant violation.
func serialize(key *secp256k1.PublicKey) (Common, error) {
	var c Common
	data := key.SerializeUncompressed()
	if len(data) != uncompressedLength {
		return c, errors.Wrapf(ErrInvariant, "uncompressed key is %d bytes", len(data))
	}
	if data[0] != uncompressedMarker {
		return c, errors.Wrapf(ErrInvariant, "uncompressed key starts with 0x%02x", data[0])
	}
	copy(c[:], data[1:])
	return c, nil
}
