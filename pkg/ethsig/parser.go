package ethsig

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// SignatureParser defines the interface for loading signature vectors from
// various sources.
type SignatureParser interface {
	// ParseVectors parses vectors from a source and returns them.
	ParseVectors(source string) ([]*SignatureVector, error)
}

// JSONParser parses signature vectors from JSON files.
type JSONParser struct {
	MessageField   string // Field name for the message (default: "message")
	DigestField    string // Field name for the digest (default: "digest", takes precedence over the message)
	SignatureField string // Field name for the packed signature (default: "signature")
	RField         string // Field name for r (default: "r")
	SField         string // Field name for s (default: "s")
	VField         string // Field name for v (default: "v")
	AddressField   string // Field name for the expected address (default: "address")
	CommonField    string // Field name for the expected public key (default: "public_key")
}

// ParseVectors parses signature vectors from a JSON file.
//
// Expected format:
// [
//
//	{"message": "...", "signature": "0x...", "address": "0x..."},
//	{"digest": "0x...", "r": "0x...", "s": "0x...", "v": 27, "public_key": "0x..."}
//
// ]
func (p *JSONParser) ParseVectors(jsonFile string) ([]*SignatureVector, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	fields := vectorFields{
		message:   orDefault(p.MessageField, "message"),
		digest:    orDefault(p.DigestField, "digest"),
		signature: orDefault(p.SignatureField, "signature"),
		r:         orDefault(p.RField, "r"),
		s:         orDefault(p.SField, "s"),
		v:         orDefault(p.VField, "v"),
		address:   orDefault(p.AddressField, "address"),
		common:    orDefault(p.CommonField, "public_key"),
	}

	vectors := make([]*SignatureVector, 0, len(items))
	for i, item := range items {
		vector, err := fields.build(func(name string) (interface{}, bool) {
			val, ok := item[name]
			return val, ok && val != nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "vector %d", i)
		}
		vectors = append(vectors, vector)
	}

	return vectors, nil
}

// CSVParser parses signature vectors from CSV files with a header row.
type CSVParser struct {
	MessageCol   string // Column name for the message (default: "message")
	DigestCol    string // Column name for the digest (default: "digest")
	SignatureCol string // Column name for the packed signature (default: "signature")
	RCol         string // Column name for r (default: "r")
	SCol         string // Column name for s (default: "s")
	VCol         string // Column name for v (default: "v")
	AddressCol   string // Column name for the expected address (default: "address")
	CommonCol    string // Column name for the expected public key (default: "public_key")
}

// ParseVectors parses signature vectors from a CSV file. Empty cells are
// treated as missing.
func (p *CSVParser) ParseVectors(csvFile string) ([]*SignatureVector, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[strings.TrimSpace(col)] = i
	}

	fields := vectorFields{
		message:   orDefault(p.MessageCol, "message"),
		digest:    orDefault(p.DigestCol, "digest"),
		signature: orDefault(p.SignatureCol, "signature"),
		r:         orDefault(p.RCol, "r"),
		s:         orDefault(p.SCol, "s"),
		v:         orDefault(p.VCol, "v"),
		address:   orDefault(p.AddressCol, "address"),
		common:    orDefault(p.CommonCol, "public_key"),
	}

	if _, ok := columns[fields.signature]; !ok {
		_, hasR := columns[fields.r]
		_, hasS := columns[fields.s]
		_, hasV := columns[fields.v]
		if !hasR || !hasS || !hasV {
			return nil, errors.New("missing required columns: signature or r, s, v")
		}
	}

	vectors := make([]*SignatureVector, 0)
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}

		vector, err := fields.build(func(name string) (interface{}, bool) {
			idx, ok := columns[name]
			if !ok || idx >= len(record) || record[idx] == "" {
				return nil, false
			}
			return record[idx], true
		})
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		vectors = append(vectors, vector)
	}

	return vectors, nil
}

// vectorFields names the fields of one vector, shared by both parsers.
type vectorFields struct {
	message, digest, signature string
	r, s, v                    string
	address, common            string
}

func (f vectorFields) build(lookup func(name string) (interface{}, bool)) (*SignatureVector, error) {
	vector := &SignatureVector{}

	// Get digest, hashing the message if no digest is given
	if val, ok := lookup(f.digest); ok {
		str, err := asString(val)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse digest")
		}
		if vector.Digest, err = DigestFromHex(str); err != nil {
			return nil, err
		}
	} else if val, ok := lookup(f.message); ok {
		str, err := asString(val)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse message")
		}
		vector.Digest = HashString(str)
	} else {
		return nil, errors.New("missing message or digest field")
	}

	// Get signature, packed or as separate components
	if val, ok := lookup(f.signature); ok {
		str, err := asString(val)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse signature")
		}
		if vector.Signature, err = ParseSignatureHex(str); err != nil {
			return nil, err
		}
	} else {
		rVal, okR := lookup(f.r)
		sVal, okS := lookup(f.s)
		vVal, okV := lookup(f.v)
		if !okR || !okS || !okV {
			return nil, errors.New("missing signature or r, s, v fields")
		}
		r, err := parseWord(rVal)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse r")
		}
		s, err := parseWord(sVal)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse s")
		}
		v, err := parseBigInt(vVal)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse v")
		}
		if !v.IsUint64() || v.Uint64() > 0xff {
			return nil, errors.Wrapf(ErrInvalidSignature, "v out of range: %s", v)
		}
		vector.Signature = NewSignature(r, s, uint8(v.Uint64()))
	}

	// Get optional expectations
	if val, ok := lookup(f.address); ok {
		str, err := asString(val)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse address")
		}
		if !common.IsHexAddress(str) {
			return nil, errors.Errorf("invalid address: %s", str)
		}
		address := common.HexToAddress(str)
		vector.Address = &address
	}
	if val, ok := lookup(f.common); ok {
		str, err := asString(val)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse public key")
		}
		key, err := CommonFromHex(str)
		if err != nil {
			return nil, err
		}
		vector.Common = &key
	}

	return vector, nil
}

func orDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func asString(val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", errors.Errorf("unsupported type: %T", val)
	}
}

// parseWord parses a 256-bit unsigned value into 32 big-endian bytes.
func parseWord(val interface{}) ([32]byte, error) {
	var word [32]byte
	z, err := parseBigInt(val)
	if err != nil {
		return word, err
	}
	if z.Sign() < 0 || z.BitLen() > 256 {
		return word, errors.Errorf("value does not fit in 32 bytes: %s", z.Text(16))
	}
	z.FillBytes(word[:])
	return word, nil
}

// parseBigInt parses a big integer from various formats (0x-prefixed hex
// string, decimal string, JSON number).
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		z := new(big.Int)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			if _, ok := z.SetString(s[2:], 16); !ok {
				return nil, errors.Errorf("invalid number format: %s", v)
			}
			return z, nil
		}
		if _, ok := z.SetString(s, 10); !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	default:
		return nil, errors.Errorf("unsupported type: %T", val)
	}
}
