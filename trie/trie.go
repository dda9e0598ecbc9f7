package trie

import (
	"bytes"
	"fmt"

	"mpt/store"
)

// Trie is a Modified Merkle Patricia Trie: a content-addressed key/value
// map whose root digest is a cryptographic commitment to the whole
// key/value set. It holds no internal lock: concurrent readers are safe
// with each other, but callers must serialize writers against readers and
// other writers themselves.
type Trie struct {
	store store.Store
	root  Digest
}

// New returns an empty trie backed by s.
func New(s store.Store) *Trie {
	return &Trie{store: s, root: store.Empty}
}

// NewWithRoot returns a trie backed by s, rooted at an existing digest —
// for resuming work against a store that already holds that subtree.
func NewWithRoot(s store.Store, root Digest) *Trie {
	return &Trie{store: s, root: root}
}

// Copy returns a handle sharing the same store but an independent root: a
// cheap snapshot, since the root is a 32-byte value and the store never
// mutates nodes in place.
func (t *Trie) Copy() *Trie {
	return &Trie{store: t.store, root: t.root}
}

// RootHash returns the digest of the current root node.
func (t *Trie) RootHash() Digest {
	return t.root
}

// Get returns the value mapped to key, or nil if key is absent. It panics
// if the store contains a malformed node — see TryGet.
func (t *Trie) Get(key []byte) []byte {
	v, err := t.TryGet(key)
	if err != nil {
		panic(err)
	}
	return v
}

// TryGet is the non-panicking form of Get. A nil, nil result means the key
// is absent; a non-nil error means the store held a node that failed to
// decode, which is corruption, not a normal outcome.
func (t *Trie) TryGet(key []byte) ([]byte, error) {
	return t.get(t.root, toNibbles(key))
}

// Insert maps key to value, overwriting any existing mapping. It panics on
// store corruption — see TryInsert.
func (t *Trie) Insert(key, value []byte) {
	if err := t.TryInsert(key, value); err != nil {
		panic(err)
	}
}

// TryInsert is the non-panicking form of Insert.
func (t *Trie) TryInsert(key, value []byte) error {
	newRoot, err := t.insert(t.root, toNibbles(key), value)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Delete removes key's mapping, if any. It panics on store corruption —
// see TryDelete.
func (t *Trie) Delete(key []byte) {
	if err := t.TryDelete(key); err != nil {
		panic(err)
	}
}

// TryDelete is the non-panicking form of Delete. Deleting an absent key is
// a no-op and leaves RootHash unchanged.
func (t *Trie) TryDelete(key []byte) error {
	newRoot, err := t.delete(t.root, toNibbles(key))
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// resolve dematerializes a digest into a node. The empty digest resolves
// to Empty directly, without a store lookup. Any other digest the store
// doesn't recognize is corruption: every non-empty digest in this model
// reached the store through storeNode, so a miss can only mean the store
// was handed contents from outside this package.
func (t *Trie) resolve(d Digest) (node, error) {
	if d == store.Empty {
		return emptyNode{}, nil
	}
	enc, ok := t.store.Get(d)
	if !ok {
		return nil, fmt.Errorf("%w: digest %x absent from store", ErrMalformedNode, d)
	}
	n, err := decodeNode(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: digest %x", err, d)
	}
	return n, nil
}

// storeNode persists n and returns its digest. Empty is special-cased to
// avoid an append-only store filling up with the one value every empty
// subtree shares.
func (t *Trie) storeNode(n node) Digest {
	if _, ok := n.(emptyNode); ok {
		return store.Empty
	}
	return t.store.Put(n.encode())
}

// get walks the subtree at d looking for path.
func (t *Trie) get(d Digest, path []byte) ([]byte, error) {
	n, err := t.resolve(d)
	if err != nil {
		return nil, err
	}
	switch cur := n.(type) {
	case emptyNode:
		return nil, nil
	case *leafNode:
		if bytes.Equal(cur.Path, path) {
			return cur.Value, nil
		}
		return nil, nil
	case *extensionNode:
		if !hasPrefix(path, cur.Path) {
			return nil, nil
		}
		return t.get(cur.Child, path[len(cur.Path):])
	case *branchNode:
		if len(path) == 0 {
			return cur.Value, nil
		}
		return t.get(cur.Children[path[0]], path[1:])
	}
	return nil, ErrMalformedNode
}

// insert rewrites the subtree at d so that path maps to value, returning
// the digest of the rewritten subtree. Every node it materializes is
// stored before its digest is handed upward.
func (t *Trie) insert(d Digest, path, value []byte) (Digest, error) {
	n, err := t.resolve(d)
	if err != nil {
		return Digest{}, err
	}
	switch cur := n.(type) {
	case emptyNode:
		return t.storeNode(&leafNode{Path: path, Value: value}), nil

	case *leafNode:
		if bytes.Equal(cur.Path, path) {
			return t.storeNode(&leafNode{Path: path, Value: value}), nil
		}
		k := commonPrefixLen(cur.Path, path)
		branch := newBranchNode()
		t.attachBranchSide(branch, cur.Path[k:], cur.Value)
		t.attachBranchSide(branch, path[k:], value)
		branchDigest := t.storeNode(branch)
		if k > 0 {
			return t.storeNode(&extensionNode{Path: clone(path[:k]), Child: branchDigest}), nil
		}
		return branchDigest, nil

	case *extensionNode:
		k := commonPrefixLen(cur.Path, path)
		if k == len(cur.Path) {
			childDigest, err := t.insert(cur.Child, path[k:], value)
			if err != nil {
				return Digest{}, err
			}
			return t.storeNode(&extensionNode{Path: cur.Path, Child: childDigest}), nil
		}

		branch := newBranchNode()
		remainder := cur.Path[k:]
		if len(remainder) == 1 {
			branch.Children[remainder[0]] = cur.Child
		} else {
			extDigest := t.storeNode(&extensionNode{Path: clone(remainder[1:]), Child: cur.Child})
			branch.Children[remainder[0]] = extDigest
		}
		t.attachBranchSide(branch, path[k:], value)
		branchDigest := t.storeNode(branch)
		if k > 0 {
			return t.storeNode(&extensionNode{Path: clone(path[:k]), Child: branchDigest}), nil
		}
		return branchDigest, nil

	case *branchNode:
		if len(path) == 0 {
			nb := *cur
			nb.Value = value
			return t.storeNode(&nb), nil
		}
		idx := path[0]
		childDigest, err := t.insert(cur.Children[idx], path[1:], value)
		if err != nil {
			return Digest{}, err
		}
		nb := *cur
		nb.Children[idx] = childDigest
		return t.storeNode(&nb), nil
	}
	return Digest{}, ErrMalformedNode
}

// attachBranchSide implements the Leaf-split attachment rule shared by the
// Leaf and Extension split cases in insert: an empty remainder becomes the
// branch's own value, otherwise a fresh Leaf is stored under the
// remainder's first nibble.
func (t *Trie) attachBranchSide(branch *branchNode, remainder, value []byte) {
	if len(remainder) == 0 {
		branch.Value = value
		return
	}
	idx := remainder[0]
	branch.Children[idx] = t.storeNode(&leafNode{Path: clone(remainder[1:]), Value: value})
}

// delete rewrites the subtree at d so that path is unmapped, returning
// the digest of the rewritten subtree (unchanged if the key was absent).
// When an extension's child collapses into another extension or a leaf,
// the two are merged rather than chained, so no stored extension ever
// points at another extension and equal key/value sets keep converging on
// the same root digest.
func (t *Trie) delete(d Digest, path []byte) (Digest, error) {
	n, err := t.resolve(d)
	if err != nil {
		return Digest{}, err
	}
	switch cur := n.(type) {
	case emptyNode:
		return store.Empty, nil

	case *leafNode:
		if bytes.Equal(cur.Path, path) {
			return store.Empty, nil
		}
		return d, nil

	case *extensionNode:
		if !hasPrefix(path, cur.Path) {
			return d, nil
		}
		childDigest, err := t.delete(cur.Child, path[len(cur.Path):])
		if err != nil {
			return Digest{}, err
		}
		if childDigest == cur.Child {
			return d, nil
		}
		if childDigest == store.Empty {
			return store.Empty, nil
		}
		return t.mergeExtension(cur.Path, childDigest)

	case *branchNode:
		nb := *cur
		if len(path) == 0 {
			nb.Value = nil
		} else {
			idx := path[0]
			childDigest, err := t.delete(cur.Children[idx], path[1:])
			if err != nil {
				return Digest{}, err
			}
			nb.Children[idx] = childDigest
		}
		return t.normalizeBranch(&nb)
	}
	return Digest{}, ErrMalformedNode
}

// mergeExtension folds an Extension's path onto its new child whenever
// that child is itself an Extension or a Leaf, rather than storing an
// Extension→Extension or Extension→Leaf chain.
func (t *Trie) mergeExtension(path []byte, childDigest Digest) (Digest, error) {
	child, err := t.resolve(childDigest)
	if err != nil {
		return Digest{}, err
	}
	switch c := child.(type) {
	case *extensionNode:
		return t.storeNode(&extensionNode{Path: concat(path, c.Path), Child: c.Child}), nil
	case *leafNode:
		return t.storeNode(&leafNode{Path: concat(path, c.Path), Value: c.Value}), nil
	default:
		return t.storeNode(&extensionNode{Path: path, Child: childDigest}), nil
	}
}

// normalizeBranch re-shapes a branch left behind by delete: an empty
// branch vanishes, a branch with one child and no value merges into that
// child, anything else is stored as-is.
func (t *Trie) normalizeBranch(b *branchNode) (Digest, error) {
	childCount := 0
	onlyIdx := -1
	for i := 0; i < 16; i++ {
		if b.Children[i] != store.Empty {
			childCount++
			onlyIdx = i
		}
	}

	if childCount == 0 && b.Value == nil {
		return store.Empty, nil
	}

	if childCount == 1 && b.Value == nil {
		child, err := t.resolve(b.Children[onlyIdx])
		if err != nil {
			return Digest{}, err
		}
		prefix := []byte{byte(onlyIdx)}
		switch c := child.(type) {
		case *extensionNode:
			return t.storeNode(&extensionNode{Path: concat(prefix, c.Path), Child: c.Child}), nil
		case *leafNode:
			return t.storeNode(&leafNode{Path: concat(prefix, c.Path), Value: c.Value}), nil
		default:
			return t.storeNode(&extensionNode{Path: prefix, Child: b.Children[onlyIdx]}), nil
		}
	}

	return t.storeNode(b), nil
}

func newBranchNode() *branchNode {
	b := &branchNode{}
	for i := range b.Children {
		b.Children[i] = store.Empty
	}
	return b
}

func hasPrefix(path, prefix []byte) bool {
	return len(path) >= len(prefix) && bytes.Equal(path[:len(prefix)], prefix)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
