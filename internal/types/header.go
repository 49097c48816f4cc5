package types

import (
	"encoding/binary"
	"math/big"
)

// HeaderSize is the size of a serialized Bitcoin block header.
const HeaderSize = 80

// BlockHeader is the 80-byte header a worker hashes while searching for a share.
type BlockHeader struct {
	Version       int32
	PrevBlockHash Digest32
	MerkleRoot    Digest32
	Timestamp     uint32
	Bits          uint32 // compact target (nBits)
	Nonce         uint32
}

// Serialize serializes the header to its 80-byte wire form.
func (h *BlockHeader) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlockHash[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	return buf
}

// Hash computes the double-SHA256 hash of the header.
func (h *BlockHeader) Hash() Digest32 {
	return DoubleSHA256(h.Serialize())
}

// MeetsTarget reports whether the header hash is at or below target.
func (h *BlockHeader) MeetsTarget(target *big.Int) bool {
	return h.Hash().MeetsTarget(target)
}
