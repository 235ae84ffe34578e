// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ubi

import "errors"

// ErrReFinalized is returned when Finalize is called a second time with a
// different identityCount than the first call. §9's design notes treat this as
// a bug in the original source and require the rewrite to reject it.
var ErrReFinalized = errors.New("ubi: epoch already finalized with different parameters")

// EpochUBIPool is the per-epoch accumulator of pool funds, the finalized
// per-person allotment once enough identities are known, and the set of
// nullifiers that have already claimed against it.
type EpochUBIPool struct {
	Epoch           uint64
	EndHeight       int32
	ClaimDeadline   int32
	TotalPool       int64
	EligibleCount   uint32
	AmountPerPerson int64
	AmountClaimed   int64
	ClaimCount      uint32
	IsFinalized     bool

	usedNullifiers map[[32]byte]struct{}
}

// NewEpochUBIPool returns a pool for epoch with every other field at its
// zero value, per §4.F's constructor contract.
func NewEpochUBIPool(epoch uint64) *EpochUBIPool {
	return &EpochUBIPool{
		Epoch:          epoch,
		usedNullifiers: make(map[[32]byte]struct{}),
	}
}

// Finalize sets EligibleCount, AmountPerPerson, and IsFinalized. It is
// idempotent only when called again with an identical identityCount; a
// second call with a different count returns ErrReFinalized rather than
// silently overwriting the frozen per-person allotment (§9).
func (p *EpochUBIPool) Finalize(identityCount uint32, minIdentities uint32, maxPerPerson int64) error {
	if p.IsFinalized {
		if p.EligibleCount == identityCount {
			return nil
		}
		return ErrReFinalized
	}

	p.EligibleCount = identityCount
	if identityCount >= minIdentities && identityCount > 0 {
		perPerson := p.TotalPool / int64(identityCount)
		if perPerson > maxPerPerson {
			perPerson = maxPerPerson
		}
		p.AmountPerPerson = perPerson
	} else {
		p.AmountPerPerson = 0
	}
	p.IsFinalized = true

	return nil
}

// AcceptingClaims reports whether the pool is finalized and height has not
// yet passed its claim deadline.
func (p *EpochUBIPool) AcceptingClaims(height int32) bool {
	return p.IsFinalized && height <= p.ClaimDeadline
}

// HasNullifier reports whether nullifier has already been recorded against
// this pool.
func (p *EpochUBIPool) HasNullifier(nullifier Nullifier) bool {
	if p.usedNullifiers == nil {
		return false
	}
	_, ok := p.usedNullifiers[nullifier.Hash]
	return ok
}

// RecordClaim marks nullifier as used and bumps the pool's running claim
// totals. Callers must have already verified eligibility; RecordClaim
// itself performs no checks.
func (p *EpochUBIPool) RecordClaim(nullifier Nullifier, amount int64) {
	if p.usedNullifiers == nil {
		p.usedNullifiers = make(map[[32]byte]struct{})
	}
	p.usedNullifiers[nullifier.Hash] = struct{}{}
	p.AmountClaimed += amount
	p.ClaimCount++
}

// NullifierCount reports the number of nullifiers recorded so far.
func (p *EpochUBIPool) NullifierCount() int {
	return len(p.usedNullifiers)
}

// Nullifiers returns every recorded nullifier hash. The returned slice is a
// fresh copy safe for the caller to retain.
func (p *EpochUBIPool) Nullifiers() [][32]byte {
	out := make([][32]byte, 0, len(p.usedNullifiers))
	for h := range p.usedNullifiers {
		out = append(out, h)
	}
	return out
}

// addNullifier is used by Deserialize to repopulate the used-nullifier set
// without going through RecordClaim's counter bookkeeping.
func (p *EpochUBIPool) addNullifier(h [32]byte) {
	if p.usedNullifiers == nil {
		p.usedNullifiers = make(map[[32]byte]struct{})
	}
	p.usedNullifiers[h] = struct{}{}
}
