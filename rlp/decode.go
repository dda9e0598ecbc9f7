package rlp

import "errors"

var (
	ErrUnexpectedEnd = errors.New("rlp: unexpected end of input")
	ErrNotAList      = errors.New("rlp: not a list")
	ErrNotAString    = errors.New("rlp: not a string")
)

// SplitString splits a buffer that begins with an RLP string into its raw
// content and the remaining bytes. A single byte below 0x80 is its own
// one-byte string. Returns ErrNotAString if buf begins with a list header.
func SplitString(buf []byte) (content, rest []byte, err error) {
	if len(buf) == 0 {
		return nil, nil, ErrUnexpectedEnd
	}

	b := buf[0]
	switch {
	case b < 0x80:
		return buf[:1], buf[1:], nil

	case b < 0xb8:
		size := int(b - 0x80)
		if len(buf) < 1+size {
			return nil, nil, ErrUnexpectedEnd
		}
		return buf[1 : 1+size], buf[1+size:], nil

	case b < 0xc0:
		lenLen := int(b - 0xb7)
		if len(buf) < 1+lenLen {
			return nil, nil, ErrUnexpectedEnd
		}
		size := 0
		for i := 0; i < lenLen; i++ {
			size = size<<8 | int(buf[1+i])
		}
		start := 1 + lenLen
		if len(buf) < start+size {
			return nil, nil, ErrUnexpectedEnd
		}
		return buf[start : start+size], buf[start+size:], nil

	default:
		return nil, nil, ErrNotAString
	}
}

// SplitList splits a buffer that begins with an RLP list into the list's raw
// content (the concatenation of its encoded items) and the remaining bytes.
// Returns ErrNotAList if buf begins with a string header.
func SplitList(buf []byte) (content, rest []byte, err error) {
	if len(buf) == 0 {
		return nil, nil, ErrUnexpectedEnd
	}

	b := buf[0]
	if b < 0xc0 {
		return nil, nil, ErrNotAList
	}

	if b < 0xf8 {
		size := int(b - 0xc0)
		if len(buf) < 1+size {
			return nil, nil, ErrUnexpectedEnd
		}
		return buf[1 : 1+size], buf[1+size:], nil
	}

	lenLen := int(b - 0xf7)
	if len(buf) < 1+lenLen {
		return nil, nil, ErrUnexpectedEnd
	}

	size := 0
	for i := 0; i < lenLen; i++ {
		size = size<<8 | int(buf[1+i])
	}

	start := 1 + lenLen
	if len(buf) < start+size {
		return nil, nil, ErrUnexpectedEnd
	}

	return buf[start : start+size], buf[start+size:], nil
}

// ListItems splits the raw content of a list (as returned by SplitList) into
// its individual RLP-encoded items.
func ListItems(content []byte) ([][]byte, error) {
	var items [][]byte
	for len(content) > 0 {
		item, rest, err := splitItem(content)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		content = rest
	}
	return items, nil
}

// splitItem returns the next whole RLP item (header plus payload) and the
// remaining bytes, regardless of whether it is a string or a list.
func splitItem(buf []byte) (item, rest []byte, err error) {
	if len(buf) == 0 {
		return nil, nil, ErrUnexpectedEnd
	}
	_, rest, err = SplitString(buf)
	if err == nil {
		return buf[:len(buf)-len(rest)], rest, nil
	}
	if err != ErrNotAString {
		return nil, nil, err
	}
	_, rest, err = SplitList(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:len(buf)-len(rest)], rest, nil
}
