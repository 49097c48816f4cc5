package util

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// HexToBytes decodes a hex string to bytes, returning an error if invalid.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// BytesToHex encodes bytes to a hex string.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ReverseBytes returns a reversed copy of b.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// Uint32ToBytes converts a uint32 to 4-byte little-endian.
func Uint32ToBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// HexToUint32LE decodes an 8-character hex string as a little-endian uint32.
func HexToUint32LE(s string) (uint32, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, fmt.Errorf("expected 4 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint32LEToHex encodes a uint32 as 8 hex characters in little-endian byte order.
func Uint32LEToHex(v uint32) string {
	return hex.EncodeToString(Uint32ToBytes(v))
}

// HexToInt32LE decodes an 8-character hex string as a little-endian int32.
func HexToInt32LE(s string) (int32, error) {
	v, err := HexToUint32LE(s)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Int32LEToHex encodes an int32 as 8 hex characters in little-endian byte order.
func Int32LEToHex(v int32) string {
	return Uint32LEToHex(uint32(v))
}
