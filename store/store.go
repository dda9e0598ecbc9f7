// Package store provides the content-addressed node storage the trie
// engine is built on: a Digest type, the Store interface, and an in-memory
// implementation. The surface is deliberately just Get/Put by digest.
// Nodes are never deleted, batched, or range-scanned, so nothing larger
// than that is needed.
package store

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Digest is a 32-byte content address: the Keccak-256 hash of a node's
// canonical RLP encoding, and the key under which a Store keeps that
// encoding.
type Digest [32]byte

// Empty is the digest of the empty trie — Keccak-256 of the RLP encoding
// of the empty byte string (the single byte 0x80). It needs no lookup: any
// code walking the trie treats Empty as resolving directly to the empty
// node without touching a Store.
var Empty = mustDigest("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

func mustDigest(hexStr string) Digest {
	b, err := hex.DecodeString(hexStr)
	if err != nil || len(b) != 32 {
		panic("store: bad built-in digest constant " + hexStr)
	}
	var d Digest
	copy(d[:], b)
	return d
}

// Keccak256 is the digest algorithm used for every node address and store
// key throughout this module.
func Keccak256(data []byte) Digest {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var d Digest
	h.Sum(d[:0])
	return d
}

// Store is a content-addressed, append-only mapping from Digest to a
// node's canonical encoding. It never deletes: nodes orphaned by a rewrite
// stay reachable by digest until the whole Store is discarded, which is
// what lets two trie roots share structure.
type Store interface {
	// Put stores enc under its digest, if not already present, and
	// returns that digest.
	Put(enc []byte) Digest
	// Get returns the encoding stored under d, or ok=false if d is
	// unknown to this Store.
	Get(d Digest) (enc []byte, ok bool)
}

// MemStore is the default Store: an in-memory map guarded by a RWMutex,
// keyed by fixed-size digests.
type MemStore struct {
	mu    sync.RWMutex
	nodes map[Digest][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nodes: make(map[Digest][]byte)}
}

func (s *MemStore) Put(enc []byte) Digest {
	d := Keccak256(enc)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[d]; !exists {
		cp := make([]byte, len(enc))
		copy(cp, enc)
		s.nodes[d] = cp
	}
	return d
}

func (s *MemStore) Get(d Digest) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enc, ok := s.nodes[d]
	return enc, ok
}

// Len reports how many distinct nodes have been stored.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
