package rlp

import (
	"bytes"
	"testing"
)

func TestEncodeBytes(t *testing.T) {
	tests := []struct {
		input    []byte
		expected []byte
	}{
		{nil, []byte{0x80}},
		{[]byte{}, []byte{0x80}},
		{[]byte{0x01}, []byte{0x01}},
		{[]byte{0x7f}, []byte{0x7f}},
		{[]byte{0x80}, []byte{0x81, 0x80}},
		{[]byte("dog"), []byte{0x83, 'd', 'o', 'g'}},
		{make([]byte, 55), append([]byte{0x80 + 55}, make([]byte, 55)...)},
		{make([]byte, 56), append([]byte{0xb8, 56}, make([]byte, 56)...)},
		{make([]byte, 300), append([]byte{0xb9, 0x01, 0x2c}, make([]byte, 300)...)},
	}

	for i, tt := range tests {
		result := EncodeBytes(tt.input)
		if !bytes.Equal(result, tt.expected) {
			t.Errorf("case %d: EncodeBytes(%d bytes) = %x, want %x", i, len(tt.input), result, tt.expected)
		}
	}
}

func TestListWriterShort(t *testing.T) {
	lw := NewListWriter()
	lw.AppendBytes([]byte("cat"))
	lw.AppendBytes([]byte("dog"))

	expected := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	if got := lw.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("ListWriter = %x, want %x", got, expected)
	}
}

func TestListWriterEmpty(t *testing.T) {
	expected := []byte{0xc0}
	if got := NewListWriter().Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("empty ListWriter = %x, want %x", got, expected)
	}
}

func TestListWriterLong(t *testing.T) {
	lw := NewListWriter()
	for i := 0; i < 17; i++ {
		lw.AppendBytes(make([]byte, 32))
	}
	enc := lw.Bytes()

	// 17 items of 33 encoded bytes each: 561 bytes of content, so the
	// header is the long-list form 0xf7+2 followed by a 2-byte length.
	if enc[0] != 0xf9 {
		t.Fatalf("long list header = %#x, want 0xf9", enc[0])
	}
	size := int(enc[1])<<8 | int(enc[2])
	if size != 17*33 {
		t.Errorf("long list declared size = %d, want %d", size, 17*33)
	}
	if len(enc) != 3+size {
		t.Errorf("long list total length = %d, want %d", len(enc), 3+size)
	}
}

func TestListWriterAppendRaw(t *testing.T) {
	lw := NewListWriter()
	lw.AppendRaw(EncodeBytes([]byte("cat")))
	lw.AppendBytes([]byte("dog"))

	expected := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	if got := lw.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("AppendRaw list = %x, want %x", got, expected)
	}
}

func TestSplitStringRoundTrip(t *testing.T) {
	inputs := [][]byte{nil, {}, {0x42}, []byte("hello world"), make([]byte, 100)}

	for _, in := range inputs {
		encoded := EncodeBytes(in)
		content, rest, err := SplitString(encoded)
		if err != nil {
			t.Fatalf("SplitString(%x) error: %v", encoded, err)
		}
		if len(rest) != 0 {
			t.Errorf("SplitString(%x) left %d trailing bytes", encoded, len(rest))
		}
		if !bytes.Equal(content, in) && !(len(content) == 0 && len(in) == 0) {
			t.Errorf("SplitString(%x) = %x, want %x", encoded, content, in)
		}
	}
}

func TestSplitStringErrors(t *testing.T) {
	if _, _, err := SplitString(nil); err != ErrUnexpectedEnd {
		t.Errorf("SplitString(nil) error = %v, want ErrUnexpectedEnd", err)
	}
	// Declared 3-byte string with only 2 bytes of payload.
	if _, _, err := SplitString([]byte{0x83, 'd', 'o'}); err != ErrUnexpectedEnd {
		t.Errorf("SplitString(truncated) error = %v, want ErrUnexpectedEnd", err)
	}
	if _, _, err := SplitString([]byte{0xc1, 0x01}); err != ErrNotAString {
		t.Errorf("SplitString(list) error = %v, want ErrNotAString", err)
	}
}

func TestSplitStringLeavesRest(t *testing.T) {
	buf := append(EncodeBytes([]byte("cat")), EncodeBytes([]byte("dog"))...)
	content, rest, err := SplitString(buf)
	if err != nil {
		t.Fatalf("SplitString error: %v", err)
	}
	if string(content) != "cat" {
		t.Errorf("content = %q, want cat", content)
	}
	if !bytes.Equal(rest, EncodeBytes([]byte("dog"))) {
		t.Errorf("rest = %x, want the second item's encoding", rest)
	}
}

func TestSplitListRoundTrip(t *testing.T) {
	lw := NewListWriter()
	lw.AppendBytes([]byte("cat"))
	lw.AppendBytes([]byte("dog"))
	encoded := lw.Bytes()

	content, rest, err := SplitList(encoded)
	if err != nil {
		t.Fatalf("SplitList error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("SplitList left %d trailing bytes", len(rest))
	}

	items, err := ListItems(content)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListItems returned %d items, want 2", len(items))
	}
	first, _, _ := SplitString(items[0])
	second, _, _ := SplitString(items[1])
	if string(first) != "cat" || string(second) != "dog" {
		t.Errorf("ListItems = %q %q, want cat dog", first, second)
	}
}

func TestSplitListErrors(t *testing.T) {
	if _, _, err := SplitList(nil); err != ErrUnexpectedEnd {
		t.Errorf("SplitList(nil) error = %v, want ErrUnexpectedEnd", err)
	}
	if _, _, err := SplitList([]byte{0x83, 'd', 'o', 'g'}); err != ErrNotAList {
		t.Errorf("SplitList(string) error = %v, want ErrNotAList", err)
	}
	// Declared 2-byte list with only 1 byte of content.
	if _, _, err := SplitList([]byte{0xc2, 0x01}); err != ErrUnexpectedEnd {
		t.Errorf("SplitList(truncated) error = %v, want ErrUnexpectedEnd", err)
	}
}

func TestListItemsNestedList(t *testing.T) {
	inner := NewListWriter()
	inner.AppendBytes([]byte("cat"))

	outer := NewListWriter()
	outer.AppendRaw(inner.Bytes())
	outer.AppendBytes([]byte("dog"))

	content, _, err := SplitList(outer.Bytes())
	if err != nil {
		t.Fatalf("SplitList error: %v", err)
	}
	items, err := ListItems(content)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListItems returned %d items, want 2", len(items))
	}
	if !bytes.Equal(items[0], inner.Bytes()) {
		t.Errorf("nested item = %x, want %x", items[0], inner.Bytes())
	}
}

func TestListItemsTruncatedItem(t *testing.T) {
	// A 3-byte string header with the payload cut off mid-item.
	if _, err := ListItems([]byte{0x83, 'd'}); err == nil {
		t.Error("ListItems(truncated) = nil error, want ErrUnexpectedEnd")
	}
}
