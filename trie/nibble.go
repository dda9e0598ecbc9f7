package trie

// Nibble path model and its compact wire form. A nibble path carries no
// terminator nibble; the leaf/extension distinction travels as an explicit
// bool and is recorded on the wire in the compact header nibble.

const (
	compactFlagLeaf = 0x2
	compactFlagOdd  = 0x1
)

// toNibbles expands a byte string into its nibble path, high nibble first.
func toNibbles(b []byte) []byte {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = c >> 4
		out[i*2+1] = c & 0x0f
	}
	return out
}

// fromNibbles packs a nibble path back into bytes. The path must have even
// length; ErrInvalidNibbles otherwise.
func fromNibbles(path []byte) ([]byte, error) {
	if len(path)%2 != 0 {
		return nil, ErrInvalidNibbles
	}
	out := make([]byte, len(path)/2)
	for i := range out {
		out[i] = path[i*2]<<4 | path[i*2+1]
	}
	return out, nil
}

// compactEncode packs a nibble path into its compact byte form. The header
// nibble carries two flags: bit1 marks a leaf path, bit0 marks an odd
// number of nibbles (in which case the first real nibble shares the header
// byte; otherwise a zero padding nibble follows the header).
func compactEncode(path []byte, isLeaf bool) []byte {
	var header byte
	if isLeaf {
		header |= compactFlagLeaf
	}

	var withHeader []byte
	if len(path)%2 == 1 {
		header |= compactFlagOdd
		withHeader = make([]byte, 0, len(path)+1)
		withHeader = append(withHeader, header)
		withHeader = append(withHeader, path...)
	} else {
		withHeader = make([]byte, 0, len(path)+2)
		withHeader = append(withHeader, header, 0)
		withHeader = append(withHeader, path...)
	}

	// withHeader always has even length by construction.
	out := make([]byte, len(withHeader)/2)
	for i := range out {
		out[i] = withHeader[i*2]<<4 | withHeader[i*2+1]
	}
	return out
}

// compactDecode is the inverse of compactEncode: it recovers the nibble
// path and the leaf flag from a compact byte string. ErrInvalidCompactPath
// if b is empty — a compact path always carries at least a header byte.
func compactDecode(b []byte) ([]byte, bool, error) {
	if len(b) == 0 {
		return nil, false, ErrInvalidCompactPath
	}
	nibbles := toNibbles(b)
	header := nibbles[0]
	isLeaf := header&compactFlagLeaf != 0
	if header&compactFlagOdd != 0 {
		return nibbles[1:], isLeaf, nil
	}
	return nibbles[2:], isLeaf, nil
}

// commonPrefixLen returns the length of the longest common prefix of two
// nibble paths.
func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
