package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	chunkPrefix   = "chunk:"
	chunkIDPrefix = "chunkid:"
	chunkCountKey = "meta:chunkcount"
)

// makeChunkKey generates the primary key for the chunk at position pos.
// Format: prefix + big-endian position, so iteration follows collection order.
func makeChunkKey(pos uint64) []byte {
	buf := make([]byte, len(chunkPrefix)+8)
	offset := copy(buf, chunkPrefix)
	binary.BigEndian.PutUint64(buf[offset:], pos)
	return buf
}

// makeChunkIDKey generates the index key mapping a chunk ID to its position.
func makeChunkIDKey(id string) []byte {
	return []byte(chunkIDPrefix + id)
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint64(buf []byte) uint64 {
	if len(buf) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(buf)
}
