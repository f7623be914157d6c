package byteutil

import "encoding/binary"

// EncodeInt64ToBytes returns the big-endian form of id, so keys sort
// numerically in bolt cursors.
func EncodeInt64ToBytes(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
