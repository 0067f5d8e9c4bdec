package ethsig

import (
	"encoding/asn1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_KnownEncodings(t *testing.T) {
	tests := []struct {
		longName string
		nid      int
		expected string
	}{
		{"secp256k1", NIDSecp256k1, "06052b8104000a"},
		{"id-ecPublicKey", NIDECPublicKey, "06072a8648ce3d0201"},
		{"prime256v1", NIDPrime256v1, "06082a8648ce3d030107"},
		{"ecdsa-with-SHA256", NIDECDSAWithSHA256, "06082a8648ce3d040302"},
		{"rsaEncryption", NIDRSAEncryption, "06092a864886f70d010101"},
		{"sha256WithRSAEncryption", NIDSHA256WithRSA, "06092a864886f70d01010b"},
		{"sha256", NIDSHA256, "0609608648016503040201"},
		{"commonName", NIDCommonName, "0603550403"},
		{"ED25519", NIDED25519, "06032b6570"},
	}

	for _, tc := range tests {
		t.Run(tc.longName, func(t *testing.T) {
			byName, err := ObjectByName(tc.longName)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, hex.EncodeToString(byName))

			byNID, err := Object(tc.nid)
			require.NoError(t, err)
			assert.Equal(t, byName, byNID)
		})
	}
}

func TestObject_MatchesEncodingASN1(t *testing.T) {
	for _, obj := range objects {
		encoded, err := Object(obj.nid)
		require.NoError(t, err, obj.longName)

		reference, err := asn1.Marshal(obj.oid)
		require.NoError(t, err, obj.longName)
		assert.Equal(t, reference, encoded, obj.longName)
	}
}

func TestObject_Unknown(t *testing.T) {
	_, err := Object(0)
	assert.ErrorIs(t, err, ErrUnknownObject)

	_, err = ObjectByName("no-such-algorithm")
	assert.ErrorIs(t, err, ErrUnknownObject)

	// Long names are case sensitive.
	_, err = ObjectByName("SECP256K1")
	assert.ErrorIs(t, err, ErrUnknownObject)

	_, err = ObjectIdentifier(-1)
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestObjectIdentifier(t *testing.T) {
	oid, err := ObjectIdentifier(NIDSecp256k1)
	require.NoError(t, err)
	assert.True(t, oid.Equal(asn1.ObjectIdentifier{1, 3, 132, 0, 10}))

	// The registry must not be reachable through the returned slice.
	oid[0] = 2
	again, err := ObjectIdentifier(NIDSecp256k1)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0])
}

func TestEncodeObject_LongForm(t *testing.T) {
	// 130 single-byte arcs push the content past 127 bytes.
	oid := asn1.ObjectIdentifier{1, 2}
	for i := 0; i < 130; i++ {
		oid = append(oid, 1)
	}

	encoded, err := encodeObject(oid)
	require.NoError(t, err)

	reference, err := asn1.Marshal(oid)
	require.NoError(t, err)
	assert.Equal(t, reference, encoded)
	assert.Equal(t, []byte{0x06, 0x81, 131}, encoded[:3])
}

func TestEncodeObject_Malformed(t *testing.T) {
	for _, oid := range []asn1.ObjectIdentifier{
		{1},
		{3, 1},
		{1, 40},
		{1, 2, -1},
	} {
		_, err := encodeObject(oid)
		assert.ErrorIs(t, err, ErrUnknownObject, oid.String())
	}
}
