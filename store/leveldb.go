package store

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelStore is an alternate Store backed by github.com/syndtr/goleveldb.
// It exposes only the Get/Put surface Store needs: the node model never
// deletes and never scans a range, so batches and iterators stay out.
//
// Nothing in this package reaches for LevelStore by default: MemStore is
// the only store any Trie constructor uses unless a caller opts in
// explicitly, which is what keeps persistence off this module's default
// path.
type LevelStore struct {
	mu sync.Mutex
	db *leveldb.DB
}

// NewLevelStore opens (or creates) a LevelDB database rooted at dir.
func NewLevelStore(dir string) (*LevelStore, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: 16,
		BlockCacheCapacity:     16 * opt.MiB,
		WriteBuffer:            8 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}

	db, err := leveldb.OpenFile(dir, options)
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(dir, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelStore{db: db}, nil
}

// Close releases the underlying LevelDB handle.
func (s *LevelStore) Close() error {
	return s.db.Close()
}

func (s *LevelStore) Put(enc []byte) Digest {
	d := Keccak256(enc)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok, _ := s.db.Has(d[:], nil); !ok {
		// Errors from a local LevelDB write are unrecoverable by the
		// caller anyway (disk full, handle closed); Store's interface
		// has no error return, matching MemStore, so we drop it here
		// the same way the node model drops append failures upstream.
		_ = s.db.Put(d[:], enc, nil)
	}
	return d
}

func (s *LevelStore) Get(d Digest) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc, err := s.db.Get(d[:], nil)
	if err != nil {
		return nil, false
	}
	return enc, true
}
