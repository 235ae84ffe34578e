// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// TestCompactRoundTrip exercises property 1 from the spec on targets the
// compact form represents exactly (no significant bits below the 23-bit
// mantissa): Expand(Compact(t)) == t for each, and Compact never sets the
// sign bit.
func TestCompactRoundTrip(t *testing.T) {
	powLimit := CompactToBig(0x1d00ffff)

	targets := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(0x7fffff),
		big.NewInt(0x123456),
		new(big.Int).Lsh(big.NewInt(0x00ffff), 8*(29-3)),
		powLimit,
	}

	for _, target := range targets {
		compact := Compact(target)
		if compact&0x00800000 != 0 {
			t.Fatalf("Compact(%x) set the sign bit: %08x", target, compact)
		}

		got, err := Expand(compact)
		if err != nil {
			t.Fatalf("Expand(%08x): unexpected error: %v", compact, err)
		}
		if got.Cmp(target) != 0 {
			t.Fatalf("round trip mismatch: target %x, compact %08x, got %x",
				target, compact, got)
		}
	}
}

// TestExpandRejectsSignBit ensures Expand refuses a compact value with its
// sign bit set.
func TestExpandRejectsSignBit(t *testing.T) {
	if _, err := Expand(0x01800000); err != ErrNegativeTarget {
		t.Fatalf("expected ErrNegativeTarget, got %v", err)
	}
}

// TestExpandRejectsOversizeExponent ensures Expand refuses a size byte above
// MaxCompactSize.
func TestExpandRejectsOversizeExponent(t *testing.T) {
	compact := uint32(35) << 24
	if _, err := Expand(compact); err != ErrTargetSizeTooLarge {
		t.Fatalf("expected ErrTargetSizeTooLarge, got %v", err)
	}
}

// TestCompactBitcoinMax mirrors scenario S2: the well known Bitcoin-style
// maximum-target compact encoding 0x1d00ffff round trips exactly.
func TestCompactBitcoinMax(t *testing.T) {
	const compact = 0x1d00ffff

	expanded, err := Expand(compact)
	if err != nil {
		t.Fatalf("Expand(0x1d00ffff): unexpected error: %v", err)
	}

	want, _ := new(big.Int).SetString(
		"00000000ffff0000000000000000000000000000000000000000000000000000", 16)
	if expanded.Cmp(want) != 0 {
		t.Fatalf("Expand(0x1d00ffff) = %x, want %x", expanded, want)
	}

	if got := Compact(expanded); got != compact {
		t.Fatalf("Compact(Expand(0x1d00ffff)) = %08x, want %08x", got, compact)
	}
}

// TestCheckProofOfWork exercises scenario-style direct hash/target
// comparisons using little-endian unsigned ordering.
func TestCheckProofOfWork(t *testing.T) {
	powLimit := CompactToBig(0x1d00ffff)

	// A hash that is numerically smaller than the target (lots of leading
	// zero bytes in the little-endian tail, i.e. big-endian high bytes).
	var lowHash chainhash.Hash
	lowHash[31] = 0x00

	if err := CheckProofOfWork(&lowHash, 0x1d00ffff, powLimit); err != nil {
		t.Fatalf("unexpected error for low hash: %v", err)
	}

	// nBits of zero must always be rejected.
	if err := CheckProofOfWork(&lowHash, 0, powLimit); err != ErrUnexpectedDifficulty {
		t.Fatalf("expected ErrUnexpectedDifficulty for nBits=0, got %v", err)
	}

	// A target larger than powLimit must be rejected regardless of hash.
	tooLoose := Compact(new(big.Int).Lsh(powLimit, 1))
	if err := CheckProofOfWork(&lowHash, tooLoose, powLimit); err != ErrUnexpectedDifficulty {
		t.Fatalf("expected ErrUnexpectedDifficulty for loose target, got %v", err)
	}

	// A hash numerically equal to or above the target fails.
	var highHash chainhash.Hash
	for i := range highHash {
		highHash[i] = 0xff
	}
	if err := CheckProofOfWork(&highHash, 0x1d00ffff, powLimit); err != ErrHighHash {
		t.Fatalf("expected ErrHighHash, got %v", err)
	}
}

// TestCalcWorkMonotone checks that lower compact targets (higher difficulty)
// yield larger work values.
func TestCalcWorkMonotone(t *testing.T) {
	easy := CalcWork(0x1d00ffff)
	hard := CalcWork(0x1c00ffff)
	if hard.Cmp(easy) <= 0 {
		t.Fatalf("expected work for a harder target to be larger: easy=%s hard=%s",
			easy, hard)
	}
}
