package trie

import (
	"mpt/rlp"
	"mpt/store"
)

// Digest aliases store.Digest so nothing outside this module needs to
// import the store package directly to talk about a node address.
type Digest = store.Digest

// node is the algebraic sum type of the trie: every position is an Empty
// value, a Leaf, an Extension, or a Branch. Child references are always
// digests, never embedded node values; every node, regardless of its
// encoded size, is addressed through the store.
type node interface {
	encode() []byte
}

// emptyNode is the distinguished empty value. Its digest is store.Empty.
type emptyNode struct{}

func (emptyNode) encode() []byte { return rlp.EncodeBytes(nil) }

// leafNode terminates a path with a value. Path holds the remaining nibbles
// from the parent to this leaf (never compact-encoded in memory; compact
// encoding only happens on the wire).
type leafNode struct {
	Path  []byte
	Value []byte
}

func (n *leafNode) encode() []byte {
	lw := rlp.NewListWriter()
	lw.AppendBytes(compactEncode(n.Path, true))
	lw.AppendBytes(n.Value)
	return lw.Bytes()
}

// extensionNode shares a nibble run between a single child subtree and its
// parent. Path is never empty — a zero-length shared run collapses into
// the child directly (see the engine's normalization rules).
type extensionNode struct {
	Path  []byte
	Child Digest
}

func (n *extensionNode) encode() []byte {
	lw := rlp.NewListWriter()
	lw.AppendBytes(compactEncode(n.Path, false))
	lw.AppendBytes(n.Child[:])
	return lw.Bytes()
}

// branchNode fans out over the 16 possible next nibbles, plus an optional
// value for a key that terminates exactly at this depth. An absent child is
// store.Empty, not a Go nil — this keeps every slot a valid, resolvable
// digest and the recursive algorithms total.
type branchNode struct {
	Children [16]Digest
	Value    []byte // nil means no value terminates here
}

func (n *branchNode) encode() []byte {
	lw := rlp.NewListWriter()
	for i := 0; i < 16; i++ {
		if n.Children[i] == store.Empty {
			lw.AppendBytes(nil)
		} else {
			lw.AppendBytes(n.Children[i][:])
		}
	}
	lw.AppendBytes(n.Value)
	return lw.Bytes()
}

// digestOf is the canonical content address of a node: Keccak-256 of its
// canonical RLP encoding.
func digestOf(n node) Digest {
	return store.Keccak256(n.encode())
}

// decodeNode parses a node's canonical encoding back into the algebra.
// ErrMalformedNode covers every shape that isn't a well-formed Empty,
// 2-item (Leaf/Extension), or 17-item (Branch) RLP structure.
func decodeNode(enc []byte) (node, error) {
	if len(enc) == 0 {
		return nil, ErrMalformedNode
	}

	content, rest, err := rlp.SplitList(enc)
	if err != nil {
		strContent, strRest, serr := rlp.SplitString(enc)
		if serr == nil && len(strContent) == 0 && len(strRest) == 0 {
			return emptyNode{}, nil
		}
		return nil, ErrMalformedNode
	}
	if len(rest) != 0 {
		return nil, ErrMalformedNode
	}

	items, err := rlp.ListItems(content)
	if err != nil {
		return nil, ErrMalformedNode
	}

	switch len(items) {
	case 2:
		return decodeShortNode(items)
	case 17:
		return decodeBranchNode(items)
	default:
		return nil, ErrMalformedNode
	}
}

func decodeShortNode(items [][]byte) (node, error) {
	pathBytes, rest, err := rlp.SplitString(items[0])
	if err != nil || len(rest) != 0 {
		return nil, ErrMalformedNode
	}
	path, isLeaf, err := compactDecode(pathBytes)
	if err != nil {
		return nil, ErrMalformedNode
	}

	valBytes, rest, err := rlp.SplitString(items[1])
	if err != nil || len(rest) != 0 {
		return nil, ErrMalformedNode
	}

	if isLeaf {
		value := make([]byte, len(valBytes))
		copy(value, valBytes)
		return &leafNode{
			Path:  append([]byte(nil), path...),
			Value: value,
		}, nil
	}

	if len(valBytes) != 32 {
		return nil, ErrMalformedNode
	}
	var child Digest
	copy(child[:], valBytes)
	return &extensionNode{Path: path, Child: child}, nil
}

func decodeBranchNode(items [][]byte) (node, error) {
	var n branchNode
	for i := 0; i < 16; i++ {
		childBytes, rest, err := rlp.SplitString(items[i])
		if err != nil || len(rest) != 0 {
			return nil, ErrMalformedNode
		}
		switch len(childBytes) {
		case 0:
			n.Children[i] = store.Empty
		case 32:
			copy(n.Children[i][:], childBytes)
		default:
			return nil, ErrMalformedNode
		}
	}

	valBytes, rest, err := rlp.SplitString(items[16])
	if err != nil || len(rest) != 0 {
		return nil, ErrMalformedNode
	}
	if len(valBytes) > 0 {
		n.Value = append([]byte(nil), valBytes...)
	}
	return &n, nil
}
