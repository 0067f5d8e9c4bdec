package ethsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// maxRecoveryID is the largest recovery id the curve library understands.
const maxRecoveryID = 3

// Sign produces a canonical recoverable signature over digest.
func Sign(secret Secret, digest Digest) (Signature, error) {
	return DefaultCurve().Sign(secret, digest)
}

// Recover returns the public key that produced sig over digest.
func Recover(digest Digest, sig Signature) (Common, error) {
	return DefaultCurve().Recover(digest, sig)
}

// Sign produces a recoverable signature over digest. The nonce is derived
// deterministically (RFC6979), so the same secret and digest always yield the
// same signature. The result is canonical: s <= n/2 and V is 27 or 28.
func (c *Curve) Sign(secret Secret, digest Digest) (Signature, error) {
	k, err := secret.scalar()
	if err != nil {
		return Signature{}, err
	}
	priv := secp256k1.NewPrivateKey(k)
	defer priv.Zero()

	// header || r || s, header = 27 + recovery id for uncompressed keys
	compact := ecdsa.SignCompact(priv, digest[:], false)
	if len(compact) != SignatureLength {
		return Signature{}, errors.Wrapf(ErrInvariant, "compact signature is %d bytes", len(compact))
	}
	recovery := compact[0] - recoveryOffset
	if recovery > maxRecoveryID {
		return Signature{}, errors.Wrapf(ErrInvariant, "compact signature header 0x%02x", compact[0])
	}
	return c.NewSignatureFromCompact(compact[1:], recovery)
}

// Recover reconstructs the public key that would have produced sig over
// digest. It does not check the key against anything; callers compare the
// result with the identity they expect, or use Verify.
func (c *Curve) Recover(digest Digest, sig Signature) (Common, error) {
	recovery := sig.RecoveryID()
	if recovery < 0 || recovery > maxRecoveryID {
		return Common{}, errors.Wrapf(ErrInvalidRecoveryID, "v=%d", sig.V)
	}

	compact := make([]byte, SignatureLength)
	compact[0] = byte(recovery + recoveryOffset)
	copy(compact[1:33], sig.R[:])
	copy(compact[33:], sig.S[:])

	key, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return Common{}, errors.Wrapf(ErrRecoveryFailed, "%v", err)
	}
	return serialize(key)
}

// Verify recovers the signer of digest and checks it against expected.
func Verify(digest Digest, sig Signature, expected Common) error {
	recovered, err := Recover(digest, sig)
	if err != nil {
		return err
	}
	if recovered != expected {
		return errors.Wrapf(ErrSignerMismatch, "recovered %s", recovered.Address().Hex())
	}
	return nil
}

// VerifyAddress recovers the signer of digest and checks its address.
func VerifyAddress(digest Digest, sig Signature, expected common.Address) error {
	recovered, err := Recover(digest, sig)
	if err != nil {
		return err
	}
	if address := recovered.Address(); address != expected {
		return errors.Wrapf(ErrSignerMismatch, "recovered %s, expected %s", address.Hex(), expected.Hex())
	}
	return nil
}
