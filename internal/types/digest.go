package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/djkazic/stratum-notify/pkg/util"
)

// DigestSize is the size of a Digest32 in bytes.
const DigestSize = 32

// Digest32 is a 32-byte hash in internal (native) byte order.
type Digest32 [DigestSize]byte

// NewDigest32 copies b into a Digest32. b must be exactly 32 bytes.
func NewDigest32(b []byte) (Digest32, error) {
	var d Digest32
	if len(b) != DigestSize {
		return d, fmt.Errorf("expected %d bytes, got %d", DigestSize, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// DoubleSHA256 hashes data twice with SHA-256, as Bitcoin does for headers,
// transactions and merkle nodes.
func DoubleSHA256(data []byte) Digest32 {
	first := sha256.Sum256(data)
	return Digest32(sha256.Sum256(first[:]))
}

// Reverse returns a copy of the digest with its byte order reversed.
func (d Digest32) Reverse() Digest32 {
	var out Digest32
	copy(out[:], util.ReverseBytes(d[:]))
	return out
}

// Int interprets the digest as a little-endian 256-bit integer.
func (d Digest32) Int() *big.Int {
	r := d.Reverse()
	return new(big.Int).SetBytes(r[:])
}

// MeetsTarget reports whether the digest, read as a little-endian integer,
// is at or below target.
func (d Digest32) MeetsTarget(target *big.Int) bool {
	return d.Int().Cmp(target) <= 0
}

// Bytes returns the digest as a freshly allocated slice.
func (d Digest32) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// String returns the digest as lowercase hex in native byte order.
func (d Digest32) String() string {
	return hex.EncodeToString(d[:])
}
