package testutil

import (
	"encoding/hex"
	"testing"

	"github.com/djkazic/stratum-notify/internal/types"
)

// MustDecodeHex decodes hex or fails the test.
func MustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

// HashFromHex converts a hex string to a Digest32, zero-padding if needed.
func HashFromHex(s string) types.Digest32 {
	b, _ := hex.DecodeString(s)
	var h types.Digest32
	copy(h[:], b)
	return h
}

// CloneParams returns a shallow copy of params so a test can mutate one field.
func CloneParams(params []interface{}) []interface{} {
	return append([]interface{}(nil), params...)
}
