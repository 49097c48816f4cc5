package util

import (
	"testing"
)

func TestHexConversion(t *testing.T) {
	original := []byte{0xde, 0xad, 0xbe, 0xef}
	hexStr := BytesToHex(original)
	if hexStr != "deadbeef" {
		t.Errorf("BytesToHex = %s, want deadbeef", hexStr)
	}

	decoded, err := HexToBytes(hexStr)
	if err != nil {
		t.Errorf("HexToBytes error: %v", err)
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Errorf("HexToBytes byte %d = %x, want %x", i, decoded[i], original[i])
		}
	}

	// Invalid hex
	_, err = HexToBytes("zzzz")
	if err == nil {
		t.Error("HexToBytes should fail on invalid hex")
	}
}

func TestUint32LE(t *testing.T) {
	tests := []struct {
		hex  string
		want uint32
	}{
		{"00000000", 0},
		{"01000000", 1},
		{"ffff001d", 0x1d00ffff},
		{"00000002", 0x02000000},
		{"ffffffff", 0xffffffff},
	}

	for _, tt := range tests {
		got, err := HexToUint32LE(tt.hex)
		if err != nil {
			t.Errorf("HexToUint32LE(%q) error: %v", tt.hex, err)
			continue
		}
		if got != tt.want {
			t.Errorf("HexToUint32LE(%q) = 0x%08x, want 0x%08x", tt.hex, got, tt.want)
		}
		if back := Uint32LEToHex(got); back != tt.hex {
			t.Errorf("Uint32LEToHex(0x%08x) = %s, want %s", got, back, tt.hex)
		}
	}
}

func TestInt32LE(t *testing.T) {
	for _, v := range []int32{0, 1, 2, -1, 536870912, -2147483648, 2147483647} {
		got, err := HexToInt32LE(Int32LEToHex(v))
		if err != nil {
			t.Errorf("round-trip %d error: %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("Int32 round-trip failed: %d -> %d", v, got)
		}
	}

	if Int32LEToHex(-1) != "ffffffff" {
		t.Errorf("Int32LEToHex(-1) = %s, want ffffffff", Int32LEToHex(-1))
	}
}

func TestHexToUint32LEErrors(t *testing.T) {
	for _, s := range []string{"", "00", "0000000000", "zzzzzzzz", "0000000"} {
		if _, err := HexToUint32LE(s); err == nil {
			t.Errorf("HexToUint32LE(%q) should fail", s)
		}
	}
}

func TestReverseBytes(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03}
	out := ReverseBytes(in)
	if BytesToHex(out) != "030201" {
		t.Errorf("ReverseBytes = %x, want 030201", out)
	}
	if in[0] != 0x01 {
		t.Error("ReverseBytes modified its input")
	}
	if len(ReverseBytes(nil)) != 0 {
		t.Error("ReverseBytes(nil) should be empty")
	}
}
