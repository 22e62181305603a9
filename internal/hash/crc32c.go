package hash

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// ErrChecksum is returned by Verify when the trailer does not match.
var ErrChecksum = errors.New("hash: checksum mismatch")

// ChecksumSize is the length of the trailer appended by Seal.
const ChecksumSize = 4

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Seal returns data followed by its little-endian CRC32C.
func Seal(data []byte) []byte {
	out := make([]byte, len(data)+ChecksumSize)
	copy(out, data)
	binary.LittleEndian.PutUint32(out[len(data):], CRC32C(data))
	return out
}

// Verify checks a sealed buffer and returns its payload.
func Verify(sealed []byte) ([]byte, error) {
	if len(sealed) < ChecksumSize {
		return nil, ErrChecksum
	}
	data := sealed[:len(sealed)-ChecksumSize]
	if binary.LittleEndian.Uint32(sealed[len(data):]) != CRC32C(data) {
		return nil, ErrChecksum
	}
	return data, nil
}
