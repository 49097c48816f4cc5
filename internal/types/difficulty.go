package types

import "math/big"

const (
	compactSignBit  = 0x00800000
	compactMantissa = 0x007fffff
)

// DiffOneTarget is the target of a difficulty-1 job (nbits 0x1d00ffff).
var DiffOneTarget = DifficultyFromBits(0x1d00ffff).Target()

// Difficulty is a compact-encoded (nBits) difficulty target: one exponent
// byte giving the target's length in bytes, then a signed 3-byte mantissa.
type Difficulty struct {
	bits uint32
}

// DifficultyFromBits wraps a compact nBits value.
func DifficultyFromBits(bits uint32) Difficulty {
	return Difficulty{bits: bits}
}

// DifficultyFromTarget converts a full-width target to its compact encoding.
// Precision below the 3-byte mantissa is lost.
func DifficultyFromTarget(target *big.Int) Difficulty {
	if target.Sign() == 0 {
		return Difficulty{}
	}

	abs := new(big.Int).Abs(target)
	size := uint((abs.BitLen() + 7) / 8)

	var mantissa uint32
	if size <= 3 {
		mantissa = uint32(abs.Uint64() << (8 * (3 - size)))
	} else {
		mantissa = uint32(new(big.Int).Rsh(abs, 8*(size-3)).Uint64())
	}
	// A set top bit would read back as negative; move it into the exponent.
	if mantissa&compactSignBit != 0 {
		mantissa >>= 8
		size++
	}

	bits := uint32(size)<<24 | mantissa
	if target.Sign() < 0 {
		bits |= compactSignBit
	}
	return Difficulty{bits: bits}
}

// Bits returns the compact nBits encoding.
func (d Difficulty) Bits() uint32 {
	return d.bits
}

// Target expands the compact encoding into a full-width target.
func (d Difficulty) Target() *big.Int {
	size := uint(d.bits >> 24)
	target := big.NewInt(int64(d.bits & compactMantissa))
	if size <= 3 {
		target.Rsh(target, 8*(3-size))
	} else {
		target.Lsh(target, 8*(size-3))
	}
	if d.bits&compactSignBit != 0 {
		target.Neg(target)
	}
	return target
}

// Value returns the difficulty relative to maxTarget, or 0 for a zero target.
func (d Difficulty) Value(maxTarget *big.Int) float64 {
	target := d.Target()
	if target.Sign() == 0 {
		return 0
	}
	q := new(big.Float).Quo(new(big.Float).SetInt(maxTarget), new(big.Float).SetInt(target))
	v, _ := q.Float64()
	return v
}
