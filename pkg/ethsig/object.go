package ethsig

import (
	"encoding/asn1"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
)

// Numeric identifiers of the algorithm objects known to Object. The values
// match OpenSSL's NID table so identifiers can be exchanged with code built on
// it.
const (
	NIDRSAEncryption    = 6
	NIDCommonName       = 13
	NIDCountryName      = 14
	NIDOrganizationName = 17
	NIDKeyUsage         = 83
	NIDSubjectAltName   = 85
	NIDBasicConstraints = 87
	NIDECPublicKey      = 408
	NIDPrime256v1       = 415
	NIDSHA256WithRSA    = 668
	NIDSHA256           = 672
	NIDSHA384           = 673
	NIDSHA512           = 674
	NIDSecp256k1        = 714
	NIDSecp384r1        = 715
	NIDECDSAWithSHA256  = 794
	NIDECDSAWithSHA384  = 795
	NIDECDSAWithSHA512  = 796
	NIDED25519          = 1087
)

type namedObject struct {
	nid      int
	longName string
	oid      asn1.ObjectIdentifier
}

var objects = []namedObject{
	{NIDRSAEncryption, "rsaEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}},
	{NIDCommonName, "commonName", asn1.ObjectIdentifier{2, 5, 4, 3}},
	{NIDCountryName, "countryName", asn1.ObjectIdentifier{2, 5, 4, 6}},
	{NIDOrganizationName, "organizationName", asn1.ObjectIdentifier{2, 5, 4, 10}},
	{NIDKeyUsage, "X509v3 Key Usage", asn1.ObjectIdentifier{2, 5, 29, 15}},
	{NIDSubjectAltName, "X509v3 Subject Alternative Name", asn1.ObjectIdentifier{2, 5, 29, 17}},
	{NIDBasicConstraints, "X509v3 Basic Constraints", asn1.ObjectIdentifier{2, 5, 29, 19}},
	{NIDECPublicKey, "id-ecPublicKey", asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}},
	{NIDPrime256v1, "prime256v1", asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}},
	{NIDSHA256WithRSA, "sha256WithRSAEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}},
	{NIDSHA256, "sha256", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}},
	{NIDSHA384, "sha384", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}},
	{NIDSHA512, "sha512", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}},
	{NIDSecp256k1, "secp256k1", asn1.ObjectIdentifier{1, 3, 132, 0, 10}},
	{NIDSecp384r1, "secp384r1", asn1.ObjectIdentifier{1, 3, 132, 0, 34}},
	{NIDECDSAWithSHA256, "ecdsa-with-SHA256", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}},
	{NIDECDSAWithSHA384, "ecdsa-with-SHA384", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}},
	{NIDECDSAWithSHA512, "ecdsa-with-SHA512", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}},
	{NIDED25519, "ED25519", asn1.ObjectIdentifier{1, 3, 101, 112}},
}

var (
	objectsByNID  = make(map[int]*namedObject, len(objects))
	objectsByName = make(map[string]*namedObject, len(objects))
)

func init() {
	for i := range objects {
		objectsByNID[objects[i].nid] = &objects[i]
		objectsByName[objects[i].longName] = &objects[i]
	}
}

// ObjectIdentifier returns the dotted identifier registered under nid.
func ObjectIdentifier(nid int) (asn1.ObjectIdentifier, error) {
	obj, ok := objectsByNID[nid]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownObject, "nid %d", nid)
	}
	return append(asn1.ObjectIdentifier(nil), obj.oid...), nil
}

// Object returns the DER encoding (tag, length and content) of the object
// registered under nid.
func Object(nid int) ([]byte, error) {
	obj, ok := objectsByNID[nid]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownObject, "nid %d", nid)
	}
	return encodeObject(obj.oid)
}

// ObjectByName returns the DER encoding of the object with the given long
// name, for example "secp256k1" or "ecdsa-with-SHA256".
func ObjectByName(longName string) ([]byte, error) {
	obj, ok := objectsByName[longName]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownObject, "long name %q", longName)
	}
	return encodeObject(obj.oid)
}

func encodeObject(oid asn1.ObjectIdentifier) ([]byte, error) {
	size, err := objectSize(oid)
	if err != nil {
		return nil, err
	}

	b := cryptobyte.NewFixedBuilder(make([]byte, 0, size))
	b.AddASN1ObjectIdentifier(oid)
	data, err := b.Bytes()
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingMismatch, "%v", err)
	}
	if len(data) != size {
		return nil, errors.Wrapf(ErrEncodingMismatch, "wrote %d bytes, expected %d", len(data), size)
	}
	return data, nil
}

// objectSize computes the length of the DER tag-length-value encoding of oid.
func objectSize(oid asn1.ObjectIdentifier) (int, error) {
	if len(oid) < 2 || oid[0] < 0 || oid[0] > 2 || oid[1] < 0 || (oid[0] < 2 && oid[1] >= 40) {
		return 0, errors.Wrapf(ErrUnknownObject, "malformed identifier %s", oid)
	}

	content := base128Size(uint64(oid[0])*40 + uint64(oid[1]))
	for _, arc := range oid[2:] {
		if arc < 0 {
			return 0, errors.Wrapf(ErrUnknownObject, "malformed identifier %s", oid)
		}
		content += base128Size(uint64(arc))
	}

	header := 2 // tag + short-form length
	if content >= 0x80 {
		for n := content; n > 0; n >>= 8 {
			header++
		}
	}
	return header + content, nil
}

func base128Size(v uint64) int {
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}
