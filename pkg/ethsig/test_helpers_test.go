package ethsig

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// Private key and address used by go-ethereum's own crypto tests.
	testSecretHex  = "0x289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testAddressHex = "0x970E8128AB834E8EAC17Ab8E3812F010678CF791"

	// Generator point of secp256k1, the public key of secret 1.
	generatorHex = "0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	generatorAddressHex = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
)

// testSecret returns the shared test key.
func testSecret(t *testing.T) Secret {
	t.Helper()
	secret, err := SecretFromHex(testSecretHex)
	require.NoError(t, err)
	return secret
}

// secretOne returns the scalar 1.
func secretOne() Secret {
	var s Secret
	s[SecretLength-1] = 1
	return s
}

// derivedSecret returns a deterministic, valid secret for index i.
func derivedSecret(t *testing.T, i int) Secret {
	t.Helper()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], uint64(i))
	digest := HashAll([]byte("ethsig test secret"), seed[:])
	secret, err := SecretFromBytes(digest[:])
	require.NoError(t, err)
	return secret
}

// writeFixture writes content to a file in a per-test temporary directory and
// returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// mustSign signs digest with secret, failing the test on error.
func mustSign(t *testing.T, secret Secret, digest Digest) Signature {
	t.Helper()
	sig, err := Sign(secret, digest)
	require.NoError(t, err)
	return sig
}
