// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow implements the compact-target arithmetic used to represent
// proof-of-work difficulty targets, independent of any particular network's
// parameters.
package pow

import (
	"math/big"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// MaxCompactSize is the largest "size" byte (bits 24-31 of the compact
// form) that Expand will accept.  A target whose size exceeds this cannot
// be represented in the 32-byte Hash256 form.
const MaxCompactSize = 34

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.  It is defined here to avoid
	// the overhead of creating it multiple times.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// compactToBig is the unchecked conversion of a compact representation to a
// whole number, following the same bit layout IEEE754 floating point uses:
// a sign bit, an 8-bit exponent ("size"), and a 23-bit mantissa.
//
//	N = (-1^sign) * mantissa * 256^(size-3)
//
// Expand layers the sign/size validation spelled out in §4.A on top of this.
func compactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	size := uint(compact >> 24)

	var bn *big.Int
	if size <= 3 {
		mantissa >>= 8 * (3 - size)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(size-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// bigToCompact packs a non-negative whole number into the compact
// representation, choosing the smallest size whose mantissa fits in 23 bits
// and whose sign bit is clear.
func bigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	size := uint(len(n.Bytes()))
	if size <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - size)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(size-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23 bits, so divide the number by
	// 256 and increment the size accordingly.  This is what keeps the
	// sign bit clear in every value bigToCompact produces.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		size++
	}

	compact := uint32(size<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// Expand converts a compact target representation into its full 256-bit
// value, returned as a big.Int for convenience in retarget arithmetic. It
// rejects any compact value whose sign bit is set or whose size exceeds
// MaxCompactSize, per §4.A.
func Expand(compact uint32) (*big.Int, error) {
	if compact&0x00800000 != 0 {
		return nil, ErrNegativeTarget
	}
	if size := compact >> 24; size > MaxCompactSize {
		return nil, ErrTargetSizeTooLarge
	}
	return compactToBig(compact), nil
}

// Compact packs a non-negative 256-bit target into its compact
// representation. The sign bit of the result is always clear, as guaranteed
// by bigToCompact. Compact panics if handed a negative number, since no
// caller within this module should ever construct one.
func Compact(target *big.Int) uint32 {
	if target.Sign() < 0 {
		panic("pow: Compact called with a negative target")
	}
	return bigToCompact(target)
}

// CompactToBig is a convenience alias of Expand for callers that have
// already validated the compact form and want the raw conversion without an
// error return, mirroring the teacher's standalone.CompactToBig. It returns
// a zero value for any input Expand would reject.
func CompactToBig(compact uint32) *big.Int {
	n, err := Expand(compact)
	if err != nil {
		return big.NewInt(0)
	}
	return n
}

// BigToCompact is an alias of Compact retained for symmetry with the
// teacher's standalone.BigToCompact naming.
func BigToCompact(n *big.Int) uint32 {
	return Compact(n)
}

// checkProofOfWorkRange ensures the provided target difficulty is in min/max
// range permitted for the network, returning an error if not.
func checkProofOfWorkRange(target *big.Int, powLimit *big.Int) error {
	if target.Sign() <= 0 {
		return ErrUnexpectedDifficulty
	}
	if target.Cmp(powLimit) > 0 {
		return ErrUnexpectedDifficulty
	}
	return nil
}

// DiffBitsToUint256 converts the compact representation used to encode
// difficulty targets to an unsigned 256-bit integer. The name mirrors the
// teacher's internal staging primitives, which provide the same conversion
// over a dedicated fixed-width type; here a big.Int carries the value so
// full-width retarget arithmetic remains available.
func DiffBitsToUint256(bits uint32) *big.Int {
	return CompactToBig(bits)
}

// Uint256ToDiffBits converts an unsigned 256-bit integer to the compact
// representation used to encode difficulty targets.
func Uint256ToDiffBits(n *big.Int) uint32 {
	return BigToCompact(n)
}

// HashToBig converts a chainhash.Hash into a big.Int, treating the hash as a
// little-endian unsigned 256-bit number. This is the representation used by
// every proof-of-work comparison in this package.
func HashToBig(hash *chainhash.Hash) *big.Int {
	// A Hash is stored little-endian, but big.Int.SetBytes expects
	// big-endian, so work over a reversed copy.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CalcWork calculates a work value from difficulty bits, approximated as
// 2^256 / (target + 1). It returns zero for a malformed or negative target.
func CalcWork(bits uint32) *big.Int {
	target, err := Expand(bits)
	if err != nil || target.Sign() <= 0 {
		return big.NewInt(0)
	}
	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// CheckProofOfWork ensures the provided block hash is less than the target
// difficulty represented by bits in compact form, and that the target is in
// range according to the network's proof-of-work limit.
//
// nBits of zero, or any value whose expanded target exceeds powLimit, is
// always rejected.
func CheckProofOfWork(blockHash *chainhash.Hash, bits uint32, powLimit *big.Int) error {
	if bits == 0 {
		return ErrUnexpectedDifficulty
	}

	target, err := Expand(bits)
	if err != nil {
		return err
	}
	if err := checkProofOfWorkRange(target, powLimit); err != nil {
		return err
	}

	hashNum := HashToBig(blockHash)
	if hashNum.Cmp(target) >= 0 {
		return ErrHighHash
	}

	return nil
}
