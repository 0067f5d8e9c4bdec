package ethsig

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
)

// lengthMarker is the first byte value that starts a long-form length.
const lengthMarker = 0xc0

// Length decodes one size field from the front of cursor and advances it.
//
// A first byte below 0xc0 is the size itself. Otherwise the first byte minus
// 0xc0 gives the number of big-endian bytes that follow and hold the size.
// Running out of input returns ErrCursorExhausted.
func Length(cursor *cryptobyte.String) (uint64, error) {
	var size uint8
	if !cursor.ReadUint8(&size) {
		return 0, errors.Wrap(ErrCursorExhausted, "reading length marker")
	}
	if size < lengthMarker {
		return uint64(size), nil
	}

	var value uint64
	for i := uint8(lengthMarker); i != size; i++ {
		var next uint8
		if !cursor.ReadUint8(&next) {
			return 0, errors.Wrapf(ErrCursorExhausted, "reading length byte %d of %d", i-lengthMarker+1, size-lengthMarker)
		}
		value = value<<8 | uint64(next)
	}
	return value, nil
}
