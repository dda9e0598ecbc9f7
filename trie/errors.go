package trie

import "errors"

// Sentinel errors returned by the nibble codec, the node codec, and the
// engine. Wrap these with fmt.Errorf("%w: ...") when adding call-site
// context; callers can still match with errors.Is.
var (
	// ErrInvalidNibbles is returned when a nibble path cannot be packed back
	// into bytes, i.e. it has an odd length.
	ErrInvalidNibbles = errors.New("trie: invalid nibble path")

	// ErrInvalidCompactPath is returned when a compact-encoded path is
	// empty (a compact path always carries at least its header byte).
	ErrInvalidCompactPath = errors.New("trie: invalid compact path")

	// ErrMalformedNode is returned when a stored byte string cannot be
	// decoded into one of the four node variants.
	ErrMalformedNode = errors.New("trie: malformed node")
)
