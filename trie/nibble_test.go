package trie

import (
	"bytes"
	"testing"
)

func TestToFromNibblesRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff},
		{0x12, 0x34, 0x56},
		[]byte("dog"),
	}

	for _, in := range inputs {
		path := toNibbles(in)
		if len(path) != len(in)*2 {
			t.Fatalf("toNibbles(%x) produced %d nibbles, want %d", in, len(path), len(in)*2)
		}
		out, err := fromNibbles(path)
		if err != nil {
			t.Fatalf("fromNibbles(%v) error: %v", path, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("fromNibbles(toNibbles(%x)) = %x, want %x", in, out, in)
		}
	}
}

func TestFromNibblesOddLength(t *testing.T) {
	_, err := fromNibbles([]byte{1, 2, 3})
	if err != ErrInvalidNibbles {
		t.Errorf("fromNibbles(odd) error = %v, want ErrInvalidNibbles", err)
	}
}

func TestCompactEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		path   []byte
		isLeaf bool
	}{
		{[]byte{}, false},
		{[]byte{}, true},
		{[]byte{1}, false},
		{[]byte{1}, true},
		{[]byte{1, 2}, false},
		{[]byte{1, 2}, true},
		{[]byte{0xf, 0x0, 0xa, 0xb, 0xc}, true},
		{[]byte{6, 4, 6, 5, 6, 7}, false},
	}

	for _, c := range cases {
		enc := compactEncode(c.path, c.isLeaf)
		path, isLeaf, err := compactDecode(enc)
		if err != nil {
			t.Fatalf("compactDecode(compactEncode(%v, %v)) error: %v", c.path, c.isLeaf, err)
		}
		if isLeaf != c.isLeaf {
			t.Errorf("isLeaf = %v, want %v", isLeaf, c.isLeaf)
		}
		if !bytes.Equal(path, c.path) && !(len(path) == 0 && len(c.path) == 0) {
			t.Errorf("path = %v, want %v", path, c.path)
		}
	}
}

func TestCompactEncodeLength(t *testing.T) {
	// Odd-length path: ceil((|p|+1)/2) bytes.
	odd := compactEncode([]byte{1, 2, 3}, false)
	if len(odd) != 2 {
		t.Errorf("len(compactEncode(3 nibbles)) = %d, want 2", len(odd))
	}
	// Even-length path: |p|/2 + 1 bytes.
	even := compactEncode([]byte{1, 2, 3, 4}, false)
	if len(even) != 3 {
		t.Errorf("len(compactEncode(4 nibbles)) = %d, want 3", len(even))
	}
}

func TestCompactDecodeEmptyInput(t *testing.T) {
	_, _, err := compactDecode(nil)
	if err != ErrInvalidCompactPath {
		t.Errorf("compactDecode(nil) error = %v, want ErrInvalidCompactPath", err)
	}
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{[]byte{}, []byte{}, 0},
		{[]byte{1, 2, 3}, []byte{1, 2, 4}, 2},
		{[]byte{1, 2}, []byte{1, 2, 3}, 2},
		{[]byte{5}, []byte{6}, 0},
	}
	for _, tt := range tests {
		if got := commonPrefixLen(tt.a, tt.b); got != tt.want {
			t.Errorf("commonPrefixLen(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
