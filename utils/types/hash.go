package types

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
)

// HashSize is the length in bytes of a raw object digest.
const HashSize = sha1.Size

var ErrInvalidHash = errors.New("invalid object hash")

// Hash is the SHA-1 digest addressing a Blob, Tree or Commit (or naming the state of a Branch).
type Hash [HashSize]byte

// ZeroHash is never produced by a real object and marks "no hash".
var ZeroHash Hash

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the abbreviated hex form used in reports.
func (h Hash) Short() string {
	return h.String()[:7]
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// ParseHash decodes a 40 character hex digest.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*HashSize {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return h, nil
}

// sumOf hashes the concatenation of parts.
func sumOf(parts ...[]byte) Hash {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
