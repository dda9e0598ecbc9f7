package rlp

// RLP (Recursive Length Prefix) encoding
// Specification: https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
//
// Encoding rules:
// 1. String of 0-55 bytes: [0x80 + len, ...data...]
// 2. String of 56+ bytes: [0xb7 + len(len), ...len..., ...data...]
// 3. List of 0-55 bytes total: [0xc0 + len, ...items...]
// 4. List of 56+ bytes total: [0xf7 + len(len), ...len..., ...items...]
// 5. Single byte [0x00, 0x7f]: represented as itself

const (
	stringShort = 0x80 // [0x80, 0xb7] - string of 0-55 bytes
	stringLong  = 0xb7 // [0xb8, 0xbf] - string of 56+ bytes
	listShort   = 0xc0 // [0xc0, 0xf7] - list of 0-55 bytes
	listLong    = 0xf7 // [0xf8, 0xff] - list of 56+ bytes
)

// EncodeBytes returns the canonical RLP string encoding of b. It never
// fails: every byte slice, including nil or empty, has exactly one valid
// RLP string encoding.
func EncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < stringShort {
		return []byte{b[0]}
	}
	if len(b) < 56 {
		out := make([]byte, 0, len(b)+1)
		out = append(out, byte(stringShort+len(b)))
		return append(out, b...)
	}
	lenLen := putIntLen(len(b))
	out := make([]byte, 0, len(b)+1+lenLen)
	out = append(out, byte(stringLong+lenLen))
	out = append(out, intToBytes(len(b), lenLen)...)
	return append(out, b...)
}

// ListWriter accumulates already-encoded RLP items and wraps them in a
// canonical list header once Bytes is called. Callers that build a node's
// child list (each child already reduced to its own RLP string or a raw
// 32-byte digest string) use this directly.
type ListWriter struct {
	content []byte
}

// NewListWriter returns an empty list builder.
func NewListWriter() *ListWriter {
	return &ListWriter{}
}

// AppendRaw appends an already RLP-encoded item to the list under
// construction.
func (lw *ListWriter) AppendRaw(item []byte) {
	lw.content = append(lw.content, item...)
}

// AppendBytes RLP-encodes b as a string and appends it to the list.
func (lw *ListWriter) AppendBytes(b []byte) {
	lw.content = append(lw.content, EncodeBytes(b)...)
}

// Bytes returns the canonical RLP list encoding: a length header followed
// by the concatenated items appended so far.
func (lw *ListWriter) Bytes() []byte {
	size := len(lw.content)
	if size < 56 {
		out := make([]byte, 0, size+1)
		out = append(out, byte(listShort+size))
		return append(out, lw.content...)
	}
	lenLen := putIntLen(size)
	out := make([]byte, 0, size+1+lenLen)
	out = append(out, byte(listLong+lenLen))
	out = append(out, intToBytes(size, lenLen)...)
	return append(out, lw.content...)
}

func putIntLen(n int) int {
	switch {
	case n < 256:
		return 1
	case n < 65536:
		return 2
	case n < 16777216:
		return 3
	default:
		return 4
	}
}

func intToBytes(n int, nbytes int) []byte {
	b := make([]byte, nbytes)
	for i := nbytes - 1; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}
