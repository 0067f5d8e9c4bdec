package ethsig

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignRecover_RoundTrip(t *testing.T) {
	for i := 0; i < 32; i++ {
		secret := derivedSecret(t, i)
		digest := HashAll([]byte("round trip"), []byte{byte(i)})

		expected, err := Commonize(secret)
		require.NoError(t, err)

		sig := mustSign(t, secret, digest)
		assert.True(t, sig.IsCanonical(), "signature %d is not canonical", i)
		assert.Contains(t, []uint8{27, 28}, sig.V)

		recovered, err := Recover(digest, sig)
		require.NoError(t, err)
		assert.Equal(t, expected, recovered, "signature %d recovered the wrong key", i)
	}
}

func TestSign_Deterministic(t *testing.T) {
	secret := testSecret(t)
	digest := HashString("deterministic")

	first := mustSign(t, secret, digest)
	second := mustSign(t, secret, digest)
	assert.Equal(t, first, second)

	other := mustSign(t, secret, HashString("other"))
	assert.NotEqual(t, first, other)
}

func TestSign_MatchesGoEthereum(t *testing.T) {
	secret := testSecret(t)
	priv, err := ethcrypto.ToECDSA(secret[:])
	require.NoError(t, err)

	for _, message := range []string{"", "hello", "The quick brown fox jumps over the lazy dog"} {
		digest := HashString(message)

		sig := mustSign(t, secret, digest)

		reference, err := ethcrypto.Sign(digest[:], priv)
		require.NoError(t, err)
		reference[64] += 27
		assert.Equal(t, reference, sig.Bytes(), "message %q", message)

		// go-ethereum expects a raw recovery id in the last byte.
		raw := sig.Bytes()
		raw[64] -= 27
		uncompressed, err := ethcrypto.Ecrecover(digest[:], raw)
		require.NoError(t, err)

		recovered, err := Recover(digest, sig)
		require.NoError(t, err)
		assert.Equal(t, uncompressed[1:], recovered[:])
	}
}

func TestSign_InvalidSecret(t *testing.T) {
	_, err := Sign(Secret{}, HashString("payload"))
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = Sign(Secret(DefaultCurve().Order().Bytes32()), HashString("payload"))
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestRecover_RejectsTamperedSignatures(t *testing.T) {
	secret := testSecret(t)
	digest := HashString("tamper")
	sig := mustSign(t, secret, digest)

	t.Run("zero r", func(t *testing.T) {
		tampered := sig
		tampered.R = [32]byte{}
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrRecoveryFailed)
	})

	t.Run("zero s", func(t *testing.T) {
		tampered := sig
		tampered.S = [32]byte{}
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrRecoveryFailed)
	})

	t.Run("r not below group order", func(t *testing.T) {
		tampered := sig
		tampered.R = DefaultCurve().Order().Bytes32()
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrRecoveryFailed)
	})

	t.Run("v below 27", func(t *testing.T) {
		tampered := sig
		tampered.V = 26
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrInvalidRecoveryID)
	})

	t.Run("v above 30", func(t *testing.T) {
		tampered := sig
		tampered.V = 31
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrInvalidRecoveryID)
	})

	t.Run("raw recovery id", func(t *testing.T) {
		tampered := sig
		tampered.V = sig.V - 27
		_, err := Recover(digest, tampered)
		assert.ErrorIs(t, err, ErrInvalidRecoveryID)
	})
}

func TestRecover_FlippedParity(t *testing.T) {
	secret := testSecret(t)
	expected, err := Commonize(secret)
	require.NoError(t, err)

	for _, message := range []string{"a", "c", "parity", "other parity"} {
		t.Run(message, func(t *testing.T) {
			digest := HashString(message)
			sig := mustSign(t, secret, digest)

			// Swapping 27 and 28 selects the other point with x = r.
			flipped := sig
			flipped.V = (sig.V-recoveryOffset)^1 + recoveryOffset
			require.Contains(t, []uint8{27, 28}, flipped.V)
			require.NotEqual(t, sig.V, flipped.V)

			recovered, err := Recover(digest, flipped)
			require.NoError(t, err)
			assert.NotEqual(t, expected, recovered)
		})
	}
}

func TestRecover_HighS(t *testing.T) {
	secret := testSecret(t)
	expected, err := Commonize(secret)
	require.NoError(t, err)

	for _, message := range []string{"a", "c", "parity"} {
		t.Run(message, func(t *testing.T) {
			digest := HashString(message)
			sig := mustSign(t, secret, digest)

			// (r, n-s) with the opposite parity is the same signature in high-s form.
			s := new(uint256.Int).SetBytes32(sig.S[:])
			highS := new(uint256.Int).Sub(DefaultCurve().Order(), s).Bytes32()
			high := NewSignature(sig.R, highS, (sig.V-recoveryOffset)^1+recoveryOffset)
			require.False(t, high.IsCanonical())

			recovered, err := Recover(digest, high)
			require.NoError(t, err)
			assert.Equal(t, expected, recovered)
			assert.NoError(t, Verify(digest, high, expected))
		})
	}
}

func TestCurve_SignMatchesPackage(t *testing.T) {
	secret := testSecret(t)
	digest := HashString("curve")

	viaCurve, err := DefaultCurve().Sign(secret, digest)
	require.NoError(t, err)
	assert.Equal(t, mustSign(t, secret, digest), viaCurve)

	fromCompact, err := DefaultCurve().NewSignatureFromCompact(viaCurve.Compact(), viaCurve.V-recoveryOffset)
	require.NoError(t, err)
	assert.Equal(t, viaCurve, fromCompact)
}

func TestVerify(t *testing.T) {
	secret := testSecret(t)
	digest := HashString("verify")
	sig := mustSign(t, secret, digest)

	expected, err := Commonize(secret)
	require.NoError(t, err)

	assert.NoError(t, Verify(digest, sig, expected))
	assert.NoError(t, VerifyAddress(digest, sig, common.HexToAddress(testAddressHex)))

	// Recovery over a different digest yields an unrelated key.
	assert.ErrorIs(t, Verify(HashString("tampered"), sig, expected), ErrSignerMismatch)
	assert.ErrorIs(t, VerifyAddress(HashString("tampered"), sig, expected.Address()), ErrSignerMismatch)

	other, err := Commonize(secretOne())
	require.NoError(t, err)
	assert.ErrorIs(t, Verify(digest, sig, other), ErrSignerMismatch)

	broken := sig
	broken.V = 0
	assert.ErrorIs(t, Verify(digest, broken, expected), ErrInvalidRecoveryID)
}
