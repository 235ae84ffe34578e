// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import "testing"

// TestFinalizeSetsAmountPerPerson covers the ordinary finalize path with
// enough identities and a pool under the per-person cap.
func TestFinalizeSetsAmountPerPerson(t *testing.T) {
	p := NewEpochUBIPool(5)
	p.TotalPool = 1000

	if err := p.Finalize(100, 10, 1000000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsFinalized {
		t.Fatal("expected pool to be finalized")
	}
	if p.AmountPerPerson != 10 {
		t.Fatalf("amountPerPerson = %d, want 10", p.AmountPerPerson)
	}
}

// TestFinalizeClampsToMaxPerPerson ensures the per-person cap is applied
// when the pool's even split would exceed it.
func TestFinalizeClampsToMaxPerPerson(t *testing.T) {
	p := NewEpochUBIPool(5)
	p.TotalPool = 1_000_000

	if err := p.Finalize(10, 10, 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AmountPerPerson != 5000 {
		t.Fatalf("amountPerPerson = %d, want 5000 (clamped)", p.AmountPerPerson)
	}
}

// TestFinalizeBelowMinIdentities yields a zero per-person amount without
// returning an error.
func TestFinalizeBelowMinIdentities(t *testing.T) {
	p := NewEpochUBIPool(5)
	p.TotalPool = 1000

	if err := p.Finalize(5, 10, 1000000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AmountPerPerson != 0 {
		t.Fatalf("amountPerPerson = %d, want 0", p.AmountPerPerson)
	}
	if !p.IsFinalized {
		t.Fatal("expected pool to still be marked finalized")
	}
}

// TestFinalizeIdempotentSameArgs ensures re-finalizing with the exact same
// identityCount is a silent no-op.
func TestFinalizeIdempotentSameArgs(t *testing.T) {
	p := NewEpochUBIPool(5)
	p.TotalPool = 1000

	if err := p.Finalize(100, 10, 1000000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := *p

	if err := p.Finalize(100, 10, 1000000); err != nil {
		t.Fatalf("unexpected error on repeat finalize: %v", err)
	}
	if p.AmountPerPerson != before.AmountPerPerson || p.EligibleCount != before.EligibleCount {
		t.Fatal("repeat finalize with identical args mutated pool state")
	}
}

// TestFinalizeRejectsDifferentArgs ensures re-finalizing with a different
// identityCount is rejected rather than silently overwriting the frozen
// allotment.
func TestFinalizeRejectsDifferentArgs(t *testing.T) {
	p := NewEpochUBIPool(5)
	p.TotalPool = 1000

	if err := p.Finalize(100, 10, 1000000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Finalize(50, 10, 1000000); err != ErrReFinalized {
		t.Fatalf("got %v, want ErrReFinalized", err)
	}
	if p.EligibleCount != 100 {
		t.Fatalf("eligibleCount = %d, want unchanged 100", p.EligibleCount)
	}
}

// TestHasNullifierAndRecordClaim covers the pool's nullifier bookkeeping.
func TestHasNullifierAndRecordClaim(t *testing.T) {
	p := NewEpochUBIPool(1)
	var n Nullifier
	n.Hash[0] = 0x42

	if p.HasNullifier(n) {
		t.Fatal("expected nullifier to be unused initially")
	}

	p.RecordClaim(n, 500)
	if !p.HasNullifier(n) {
		t.Fatal("expected nullifier to be marked used after RecordClaim")
	}
	if p.ClaimCount != 1 {
		t.Fatalf("claimCount = %d, want 1", p.ClaimCount)
	}
	if p.AmountClaimed != 500 {
		t.Fatalf("amountClaimed = %d, want 500", p.AmountClaimed)
	}
}

// TestAcceptingClaims covers the finalized/deadline gate.
func TestAcceptingClaims(t *testing.T) {
	p := NewEpochUBIPool(1)
	p.ClaimDeadline = 100

	if p.AcceptingClaims(50) {
		t.Fatal("expected an unfinalized pool to reject claims")
	}

	p.IsFinalized = true
	if !p.AcceptingClaims(50) {
		t.Fatal("expected a finalized pool within deadline to accept claims")
	}
	if p.AcceptingClaims(101) {
		t.Fatal("expected a finalized pool past its deadline to reject claims")
	}
}
